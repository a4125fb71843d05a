package libpostal

import (
	"fmt"
	"sync"
)

// Lifecycle owns process-wide initialization and teardown of the library's
// three subsystems: core, parser and language classifier. It is constructed
// once per process and shared by reference with every marshaling call site.
type Lifecycle struct {
	engine  Engine
	datadir string

	mu      sync.Mutex
	started bool
}

// NewLifecycle wraps engine with lifecycle tracking. A non-empty datadir is
// passed to every subsystem setup call.
func NewLifecycle(engine Engine, datadir string) *Lifecycle {
	return &Lifecycle{engine: engine, datadir: datadir}
}

// Start initializes the core, parser and language classifier subsystems in
// that order. The first failure aborts startup and is returned; cleanup of
// any subsystem already initialized is left to the library's own
// process-exit handling. Start is a no-op once it has succeeded.
func (l *Lifecycle) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return nil
	}
	if err := l.engine.Setup(l.datadir); err != nil {
		return fmt.Errorf("libpostal core setup: %w", err)
	}
	if err := l.engine.SetupParser(l.datadir); err != nil {
		return fmt.Errorf("libpostal parser setup: %w", err)
	}
	if err := l.engine.SetupLanguageClassifier(l.datadir); err != nil {
		return fmt.Errorf("libpostal language classifier setup: %w", err)
	}
	l.started = true
	return nil
}

// Stop tears down all three subsystems. Teardown calls cannot fail. Stop
// does nothing unless Start previously succeeded.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return
	}
	l.engine.Teardown()
	l.engine.TeardownParser()
	l.engine.TeardownLanguageClassifier()
	l.started = false
}

// Started reports whether the subsystems are currently initialized.
func (l *Lifecycle) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}
