//go:build cgo

package libpostal

/*
#cgo pkg-config: libpostal
#include <stdlib.h>
#include <libpostal/libpostal.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

// DefaultEngine returns the engine backed by the linked libpostal library.
func DefaultEngine() Engine { return cgoEngine{} }

type cgoEngine struct{}

func (cgoEngine) Setup(datadir string) error {
	if datadir != "" {
		cdir := C.CString(datadir)
		defer C.free(unsafe.Pointer(cdir))
		if !bool(C.libpostal_setup_datadir(cdir)) {
			return errors.New("libpostal_setup_datadir failed")
		}
		return nil
	}
	if !bool(C.libpostal_setup()) {
		return errors.New("libpostal_setup failed")
	}
	return nil
}

func (cgoEngine) SetupParser(datadir string) error {
	if datadir != "" {
		cdir := C.CString(datadir)
		defer C.free(unsafe.Pointer(cdir))
		if !bool(C.libpostal_setup_parser_datadir(cdir)) {
			return errors.New("libpostal_setup_parser_datadir failed")
		}
		return nil
	}
	if !bool(C.libpostal_setup_parser()) {
		return errors.New("libpostal_setup_parser failed")
	}
	return nil
}

func (cgoEngine) SetupLanguageClassifier(datadir string) error {
	if datadir != "" {
		cdir := C.CString(datadir)
		defer C.free(unsafe.Pointer(cdir))
		if !bool(C.libpostal_setup_language_classifier_datadir(cdir)) {
			return errors.New("libpostal_setup_language_classifier_datadir failed")
		}
		return nil
	}
	if !bool(C.libpostal_setup_language_classifier()) {
		return errors.New("libpostal_setup_language_classifier failed")
	}
	return nil
}

func (cgoEngine) Teardown()                   { C.libpostal_teardown() }
func (cgoEngine) TeardownParser()             { C.libpostal_teardown_parser() }
func (cgoEngine) TeardownLanguageClassifier() { C.libpostal_teardown_language_classifier() }

func (cgoEngine) ExpandAddress(input string) Expansion {
	cinput := C.CString(input)
	defer C.free(unsafe.Pointer(cinput))

	var n C.size_t
	options := C.libpostal_get_default_options()
	arr := C.libpostal_expand_address(cinput, options, &n)
	return &cgoExpansion{arr: arr, n: int(n)}
}

func (cgoEngine) ParseAddress(input string) Response {
	cinput := C.CString(input)
	defer C.free(unsafe.Pointer(cinput))

	options := C.libpostal_get_address_parser_default_options()
	return &cgoResponse{resp: C.libpostal_parse_address(cinput, options)}
}

// cgoExpansion owns a C string array until Destroy.
type cgoExpansion struct {
	arr **C.char
	n   int
}

func (e *cgoExpansion) Len() int { return e.n }

func (e *cgoExpansion) At(i int) string {
	return C.GoString(unsafe.Slice(e.arr, e.n)[i])
}

func (e *cgoExpansion) Destroy() {
	if e.arr == nil {
		return
	}
	C.libpostal_expansion_array_destroy(e.arr, C.size_t(e.n))
	e.arr = nil
	e.n = 0
}

// cgoResponse owns a parser response struct until Destroy.
type cgoResponse struct {
	resp *C.libpostal_address_parser_response_t
}

func (r *cgoResponse) Len() int {
	if r.resp == nil {
		return 0
	}
	return int(r.resp.num_components)
}

func (r *cgoResponse) Label(i int) string {
	return C.GoString(unsafe.Slice(r.resp.labels, r.Len())[i])
}

func (r *cgoResponse) Value(i int) string {
	return C.GoString(unsafe.Slice(r.resp.components, r.Len())[i])
}

func (r *cgoResponse) Destroy() {
	if r.resp == nil {
		return
	}
	C.libpostal_address_parser_response_destroy(r.resp)
	r.resp = nil
}
