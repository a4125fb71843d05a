package postal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinfer/postal-plugin/internal/libpostal/libpostaltest"
	"github.com/twinfer/postal-plugin/testutil"
)

func newTestClient(fake *libpostaltest.Fake) *Client {
	return newClientWithEngine(fake, defaultOptions())
}

func TestNormalizePreservesEngineOrder(t *testing.T) {
	fake := &libpostaltest.Fake{
		Expansions: map[string][]string{
			"30 W 26th St": {
				"30 west 26th street",
				"30 west 26 street",
				"30 west 26th street", // engine may repeat variants
			},
		},
	}
	client := newTestClient(fake)

	variants, err := client.Normalize(context.Background(), "30 W 26th St")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"30 west 26th street",
		"30 west 26 street",
		"30 west 26th street",
	}, variants, "order preserved, duplicates kept")
	assert.Zero(t, fake.Live())
}

func TestNormalizeEmptyResult(t *testing.T) {
	fake := &libpostaltest.Fake{}
	client := newTestClient(fake)

	variants, err := client.Normalize(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, variants)
	assert.Empty(t, variants)
	assert.Zero(t, fake.Live())
}

func TestNormalizeCanceledContext(t *testing.T) {
	fake := &libpostaltest.Fake{}
	client := newTestClient(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Normalize(ctx, "30 W 26th St")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.Calls, "engine must not be called after cancellation")
}

func TestParseBuildsDocument(t *testing.T) {
	fake := &libpostaltest.Fake{
		Parses: map[string][]libpostaltest.Component{
			"781 Franklin Ave Crown Heights Brooklyn NYC NY 11216": {
				{Label: "house_number", Value: "781"},
				{Label: "road", Value: "franklin ave"},
				{Label: "suburb", Value: "crown heights"},
				{Label: "city_district", Value: "brooklyn"},
				{Label: "city", Value: "nyc"},
				{Label: "state", Value: "ny"},
				{Label: "postcode", Value: "11216"},
			},
		},
	}
	client := newTestClient(fake)

	doc, err := client.Parse(context.Background(), "781 Franklin Ave Crown Heights Brooklyn NYC NY 11216")
	require.NoError(t, err)
	testutil.RequireDocEqual(t, map[string]any{
		"house_number":  "781",
		"road":          "franklin ave",
		"suburb":        "crown heights",
		"city_district": "brooklyn",
		"city":          "nyc",
		"state":         "ny",
		"postcode":      "11216",
	}, doc)
	assert.Zero(t, fake.Live())
}

func TestParseEmptyResult(t *testing.T) {
	fake := &libpostaltest.Fake{}
	client := newTestClient(fake)

	raw, err := client.ParseDocument(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	doc, err := client.Parse(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, doc)
	assert.Zero(t, fake.Live())
}

func TestParseEscapesComponentText(t *testing.T) {
	input := `O'Brien; 5 Main "St".`
	fake := &libpostaltest.Fake{
		Parses: map[string][]libpostaltest.Component{
			input: {
				{Label: "house", Value: `o'brien`},
				{Label: "road", Value: "5 main \"st\".\nwith\\escapes\t"},
			},
		},
	}
	client := newTestClient(fake)

	raw, err := client.ParseDocument(context.Background(), input)
	require.NoError(t, err)

	doc := testutil.MustDecodeDoc(t, raw)
	assert.Equal(t, `o'brien`, doc["house"])
	assert.Equal(t, "5 main \"st\".\nwith\\escapes\t", doc["road"], "decoding recovers the component exactly")
	assert.Zero(t, fake.Live())
}

func TestParseDuplicateLabelLastWins(t *testing.T) {
	fake := &libpostaltest.Fake{
		Parses: map[string][]libpostaltest.Component{
			"main st main st": {
				{Label: "road", Value: "first main st"},
				{Label: "road", Value: "second main st"},
			},
		},
	}
	client := newTestClient(fake)

	doc, err := client.Parse(context.Background(), "main st main st")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"road": "second main st"}, doc)
	assert.Zero(t, fake.Live())
}

func TestParseInvalidDocumentReleasesResponse(t *testing.T) {
	// A raw vertical tab is outside the escape table and makes the built
	// document invalid JSON; the response handle must still be released.
	fake := &libpostaltest.Fake{
		Parses: map[string][]libpostaltest.Component{
			"bad": {{Label: "road", Value: "a\x0bb"}},
		},
	}
	client := newTestClient(fake)

	_, err := client.ParseDocument(context.Background(), "bad")
	require.Error(t, err)
	assert.Zero(t, fake.Live())
}

func TestParseCanceledContext(t *testing.T) {
	fake := &libpostaltest.Fake{}
	client := newTestClient(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Parse(ctx, "781 Franklin Ave")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.Calls)
}

func TestClientLifecycleWithInterleavedCalls(t *testing.T) {
	fake := &libpostaltest.Fake{
		Expansions: map[string][]string{"a": {"a"}},
		Parses:     map[string][]libpostaltest.Component{"b": {{Label: "road", Value: "b"}}},
	}
	client := newTestClient(fake)

	require.NoError(t, client.Startup())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.Normalize(ctx, "a")
		require.NoError(t, err)
		_, err = client.Parse(ctx, "b")
		require.NoError(t, err)
	}
	client.Shutdown()

	assert.Zero(t, fake.Live(), "no residual engine allocations")
	assert.Equal(t, "setup", fake.Calls[0])
	assert.Equal(t, "teardown_language_classifier", fake.Calls[len(fake.Calls)-1])
}

func TestDefaultClientIsShared(t *testing.T) {
	assert.Same(t, Default(), Default(), "package-level calls go through one shared client")
}

func TestStartupFailurePropagates(t *testing.T) {
	fake := &libpostaltest.Fake{SetupParserErr: assert.AnError}
	client := newTestClient(fake)

	err := client.Startup()
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "parser setup")
}
