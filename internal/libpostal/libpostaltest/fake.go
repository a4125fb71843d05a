// Package libpostaltest provides a scripted in-memory Engine for tests.
//
// The fake records every lifecycle and capability call in order and tracks
// outstanding result handles, so tests can assert both call sequencing and
// that every handle returned across the boundary is destroyed exactly once.
package libpostaltest

import "github.com/twinfer/postal-plugin/internal/libpostal"

// Component is one labeled fragment of a scripted parse result.
type Component struct {
	Label string
	Value string
}

// Fake is an Engine backed by canned results, keyed by input address.
// Inputs with no script entry yield empty results, matching how the real
// library treats unrecognizable text.
type Fake struct {
	Expansions map[string][]string
	Parses     map[string][]Component

	// Injected setup failures, one per subsystem.
	SetupErr           error
	SetupParserErr     error
	SetupClassifierErr error

	// Calls records every engine call in order, using the C-side names.
	Calls []string

	live int
}

var _ libpostal.Engine = (*Fake)(nil)

func (f *Fake) Setup(datadir string) error {
	f.Calls = append(f.Calls, "setup")
	return f.SetupErr
}

func (f *Fake) SetupParser(datadir string) error {
	f.Calls = append(f.Calls, "setup_parser")
	return f.SetupParserErr
}

func (f *Fake) SetupLanguageClassifier(datadir string) error {
	f.Calls = append(f.Calls, "setup_language_classifier")
	return f.SetupClassifierErr
}

func (f *Fake) Teardown()                   { f.Calls = append(f.Calls, "teardown") }
func (f *Fake) TeardownParser()             { f.Calls = append(f.Calls, "teardown_parser") }
func (f *Fake) TeardownLanguageClassifier() { f.Calls = append(f.Calls, "teardown_language_classifier") }

func (f *Fake) ExpandAddress(input string) libpostal.Expansion {
	f.Calls = append(f.Calls, "expand_address")
	f.live++
	return &fakeExpansion{fake: f, items: f.Expansions[input]}
}

func (f *Fake) ParseAddress(input string) libpostal.Response {
	f.Calls = append(f.Calls, "parse_address")
	f.live++
	return &fakeResponse{fake: f, items: f.Parses[input]}
}

// Live reports the number of result handles not yet destroyed.
func (f *Fake) Live() int { return f.live }

type fakeExpansion struct {
	fake      *Fake
	items     []string
	destroyed bool
}

func (e *fakeExpansion) Len() int        { return len(e.items) }
func (e *fakeExpansion) At(i int) string { return e.items[i] }

func (e *fakeExpansion) Destroy() {
	if e.destroyed {
		panic("libpostaltest: expansion destroyed twice")
	}
	e.destroyed = true
	e.fake.live--
}

type fakeResponse struct {
	fake      *Fake
	items     []Component
	destroyed bool
}

func (r *fakeResponse) Len() int           { return len(r.items) }
func (r *fakeResponse) Label(i int) string { return r.items[i].Label }
func (r *fakeResponse) Value(i int) string { return r.items[i].Value }

func (r *fakeResponse) Destroy() {
	if r.destroyed {
		panic("libpostaltest: response destroyed twice")
	}
	r.destroyed = true
	r.fake.live--
}
