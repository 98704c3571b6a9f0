package lib

import (
	"fmt"

	"github.com/prx-network/relayleaf/internal/client"
	"github.com/prx-network/relayleaf/internal/log"
	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/relay"
	"github.com/prx-network/relayleaf/internal/relay/fake"
	"github.com/prx-network/relayleaf/internal/relay/native"
)

// EngineType identifies the relay engine implementation.
type EngineType string

const (
	// EngineNative binds the real relay_leaf shared library. Requires a
	// build with the relaynative tag and the library present at link time.
	EngineNative EngineType = "native"

	// EngineFake uses an in-memory simulation (no network activity).
	// Use this for unit testing without the native library.
	EngineFake EngineType = "fake"
)

// Config configures the SDK client.
//
// All fields are optional: an empty Config{} uses the native engine and a
// silent logger.
type Config struct {
	// Engine selects the relay engine implementation.
	// Default: [EngineNative].
	Engine EngineType

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Engine == "" {
		c.Engine = EngineNative
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// New creates a new relay client handle in the uninitialized state. The
// engine resource is allocated by [Client.Create] and must be released with
// [Client.Destroy] (idempotent, safe to defer).
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create engine: %w", err)
	}

	c, err := client.New(client.Config{
		Engine: eng,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create client: %w", err)
	}

	return c, nil
}

func newEngine(cfg Config) (relay.Engine, error) {
	switch cfg.Engine {
	case EngineFake:
		return fake.NewEngine(fake.EngineConfig{Logger: cfg.Logger})
	case EngineNative:
		return native.NewEngine(native.EngineConfig{Logger: cfg.Logger})
	default:
		return nil, fmt.Errorf("unsupported engine type %q: %w", cfg.Engine, model.ErrNotValid)
	}
}
