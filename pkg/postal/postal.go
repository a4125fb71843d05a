// Package postal provides a high-level API for normalizing and parsing
// postal addresses through the libpostal engine.
//
// Basic usage:
//
//	if err := postal.Startup(); err != nil {
//	    log.Fatal(err)
//	}
//	defer postal.Shutdown()
//
//	variants, err := postal.Normalize(ctx, "Quatre-vingt-douze Ave des Champs-Élysées")
//	doc, err := postal.Parse(ctx, "781 Franklin Ave Crown Heights Brooklyn NYC NY 11216")
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/twinfer/postal-plugin/internal/libpostal"
)

// Client marshals addresses through the libpostal engine. All methods are
// safe for concurrent use once Startup has completed.
type Client struct {
	engine    libpostal.Engine
	lifecycle *libpostal.Lifecycle
	logger    *slog.Logger
}

// options holds configuration for the client.
type options struct {
	logger  *slog.Logger
	datadir string
}

// Option is a function that configures client options.
type Option func(*options)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDataDir points the engine at a non-default libpostal data directory.
// The empty string keeps the library's compiled-in default.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.datadir = dir
	}
}

func defaultOptions() options {
	return options{logger: slog.Default()}
}

// NewClient creates a client backed by the linked libpostal engine.
func NewClient(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newClientWithEngine(libpostal.DefaultEngine(), o)
}

// newClientWithEngine is the seam used by tests to substitute a fake engine.
func newClientWithEngine(engine libpostal.Engine, o options) *Client {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Client{
		engine:    engine,
		lifecycle: libpostal.NewLifecycle(engine, o.datadir),
		logger:    o.logger,
	}
}

// Startup initializes the engine's core, parser and language classifier
// subsystems. It must complete before the first Normalize or Parse call.
func (c *Client) Startup() error {
	if err := c.lifecycle.Start(); err != nil {
		return err
	}
	c.logger.Debug("libpostal engine started")
	return nil
}

// Shutdown tears the engine down. No marshaling call may follow it.
func (c *Client) Shutdown() {
	c.lifecycle.Stop()
	c.logger.Debug("libpostal engine stopped")
}

// Normalize returns the normalized variants of input in the order the engine
// produced them, with no reordering or deduplication. An input yielding zero
// expansions returns an empty slice, not an error.
func (c *Client) Normalize(ctx context.Context, input string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	expansion := c.engine.ExpandAddress(input)
	defer expansion.Destroy()

	variants := make([]string, expansion.Len())
	for i := range variants {
		variants[i] = expansion.At(i)
	}
	c.logger.Debug("expanded address", "variants", len(variants))
	return variants, nil
}

// Parse returns the labeled components of input as a document map, one entry
// per component label. The document is built as JSON text and decoded back
// through encoding/json, so the result is always valid per the host grammar;
// a label the engine repeats follows JSON object semantics and the last
// occurrence wins.
func (c *Client) Parse(ctx context.Context, input string) (map[string]any, error) {
	raw, err := c.ParseDocument(ctx, input)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding component document: %w", err)
	}
	return doc, nil
}

// ParseDocument returns the labeled components of input as raw JSON object
// text, validated against the host grammar. An input yielding zero
// components returns the document {}.
func (c *Client) ParseDocument(ctx context.Context, input string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response := c.engine.ParseAddress(input)
	defer response.Destroy()

	buf := make([]byte, 0, 2+32*response.Len())
	buf = append(buf, '{')
	for i := 0; i < response.Len(); i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendQuoted(buf, response.Label(i))
		buf = append(buf, ':')
		buf = appendQuoted(buf, response.Value(i))
	}
	buf = append(buf, '}')

	if !json.Valid(buf) {
		return nil, fmt.Errorf("built invalid component document: %q", buf)
	}
	c.logger.Debug("parsed address", "components", response.Len())
	return buf, nil
}

// Global client instance for convenience functions.
var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// Default returns the shared process-wide client, constructing it with
// default options on first use. To configure the shared client, call Startup
// with options before anything else touches it.
func Default() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient()
	})
	return defaultClient
}

// Startup initializes the shared client's engine. The options configure the
// shared client and are applied only by the call that constructs it, which
// is the first use of the shared client in the process.
func Startup(opts ...Option) error {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient(opts...)
	})
	return defaultClient.Startup()
}

// Shutdown tears the shared client's engine down.
func Shutdown() {
	Default().Shutdown()
}

// Normalize calls Normalize on the shared client.
func Normalize(ctx context.Context, input string) ([]string, error) {
	return Default().Normalize(ctx, input)
}

// Parse calls Parse on the shared client.
func Parse(ctx context.Context, input string) (map[string]any, error) {
	return Default().Parse(ctx, input)
}
