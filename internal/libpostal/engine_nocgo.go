//go:build !cgo

package libpostal

// DefaultEngine returns a stub engine. Without cgo there is no libpostal to
// link against, so every setup call fails and the lifecycle never starts.
// The capability methods still return valid empty handles rather than
// panicking, since a misordered caller is a precondition violation we have
// no way to report here.
func DefaultEngine() Engine { return stubEngine{} }

type stubEngine struct{}

func (stubEngine) Setup(string) error                   { return ErrEngineUnavailable }
func (stubEngine) SetupParser(string) error             { return ErrEngineUnavailable }
func (stubEngine) SetupLanguageClassifier(string) error { return ErrEngineUnavailable }

func (stubEngine) Teardown()                   {}
func (stubEngine) TeardownParser()             {}
func (stubEngine) TeardownLanguageClassifier() {}

func (stubEngine) ExpandAddress(string) Expansion { return emptyExpansion{} }
func (stubEngine) ParseAddress(string) Response   { return emptyResponse{} }

type emptyExpansion struct{}

func (emptyExpansion) Len() int      { return 0 }
func (emptyExpansion) At(int) string { return "" }
func (emptyExpansion) Destroy()      {}

type emptyResponse struct{}

func (emptyResponse) Len() int         { return 0 }
func (emptyResponse) Label(int) string { return "" }
func (emptyResponse) Value(int) string { return "" }
func (emptyResponse) Destroy()         {}
