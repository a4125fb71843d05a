// Package libpostal is the boundary to the libpostal address-processing
// library. It exposes the library's three-subsystem lifecycle and its two
// capabilities, expansion and parsing, behind a narrow Engine interface so
// the marshaling layers above never touch cgo directly.
//
// Expansion and parse results are returned as handles that own
// library-allocated memory. Callers must call Destroy on every handle exactly
// once, on every return path, or the allocation leaks on the C side.
package libpostal

import "errors"

// ErrEngineUnavailable is returned by setup calls when the binary was built
// without cgo and no libpostal library is linked in.
var ErrEngineUnavailable = errors.New("libpostal engine not available in this build")

// Engine is the capability contract of the address-processing library.
// Setup and teardown calls are process-wide; the host guarantees setup
// completes before the first capability call and teardown happens after the
// last one, so implementations need no internal locking.
type Engine interface {
	// Setup initializes the core subsystem. A non-empty datadir overrides the
	// library's default model directory.
	Setup(datadir string) error
	// SetupParser initializes the address parser subsystem.
	SetupParser(datadir string) error
	// SetupLanguageClassifier initializes the language classifier subsystem.
	SetupLanguageClassifier(datadir string) error

	Teardown()
	TeardownParser()
	TeardownLanguageClassifier()

	// ExpandAddress normalizes input with the library's default options. The
	// returned handle owns the result until Destroy.
	ExpandAddress(input string) Expansion
	// ParseAddress splits input into labeled components with the library's
	// default options. The returned handle owns the result until Destroy.
	ParseAddress(input string) Response
}

// Expansion holds the ordered normalized variants of one input address.
type Expansion interface {
	Len() int
	At(i int) string
	Destroy()
}

// Response holds the ordered labeled components of one parsed address.
// Labels are opaque strings chosen by the library and are not guaranteed
// unique within a response.
type Response interface {
	Len() int
	Label(i int) string
	Value(i int) string
	Destroy()
}
