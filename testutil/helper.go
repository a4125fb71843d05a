// Package testutil holds helpers shared by the plugin's test suites.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MustDecodeDoc decodes JSON object text, failing the test on error.
func MustDecodeDoc(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding document %q: %v", data, err)
	}
	return doc
}

// RequireDocEqual fails the test when two decoded documents differ,
// printing a go-cmp diff.
func RequireDocEqual(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}
