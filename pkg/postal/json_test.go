package postal

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendEscapedTable(t *testing.T) {
	escaped := map[byte]string{
		'\\': `\\`,
		'"':  `\"`,
		'\n': `\n`,
		'\r': `\r`,
		'\t': `\t`,
		'\b': `\b`,
		'\f': `\f`,
	}

	for ch, want := range escaped {
		got := AppendEscaped(nil, []byte{ch})
		assert.Equal(t, want, string(got), "byte 0x%02x", ch)
	}

	// Every other byte value passes through unchanged.
	for b := 0; b < 256; b++ {
		ch := byte(b)
		if _, special := escaped[ch]; special {
			continue
		}
		got := AppendEscaped(nil, []byte{ch})
		assert.Equal(t, []byte{ch}, got, "byte 0x%02x", ch)
	}
}

func TestAppendEscapedRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"781 Franklin Ave Crown Heights Brooklyn NYC NY 11216",
		`O'Brien; 5 Main "St".`,
		`back\slash`,
		"line one\nline two\r\n\ttabbed",
		"\b\f\"\\",
		"Quatre-vingt-douze Ave des Champs-Élysées",
		"北京市朝阳区",
		"mixed 日本 \"quotes\" and \\slashes\\",
	}

	for _, input := range inputs {
		buf := append([]byte{'"'}, AppendEscaped(nil, []byte(input))...)
		buf = append(buf, '"')

		var decoded string
		require.NoError(t, json.Unmarshal(buf, &decoded), "input %q", input)
		assert.Equal(t, input, decoded)
	}
}

func TestAppendEscapedWorstCaseBound(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii with no specials",
		strings.Repeat(`\"`, 100),
		strings.Repeat("\n\r\t\b\f", 50),
		"Ünïcödé mixed with \"specials\"\n",
	}

	for _, input := range inputs {
		got := AppendEscaped(nil, []byte(input))
		assert.LessOrEqual(t, len(got), 2*len(input), "input %q", input)
	}
}

func TestAppendEscapedPreservesPrefix(t *testing.T) {
	dst := []byte(`{"label":`)
	got := AppendEscaped(dst, []byte("5 Main\tSt"))
	assert.Equal(t, `{"label":5 Main\tSt`, string(got))
}
