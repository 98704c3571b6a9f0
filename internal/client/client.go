// Package client implements the relay client handle: the state machine that
// governs which engine operations are legal at which point of a client's
// life, and the translation of every boundary crossing into structured
// results.
package client

import (
	"fmt"
	"sync"

	"github.com/prx-network/relayleaf/internal/log"
	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/relay"
)

// State is the lifecycle state of a client handle.
type State string

const (
	// StateUninitialized indicates no engine resource has been created yet.
	StateUninitialized State = "uninitialized"
	// StateCreated indicates the engine resource exists but is not running.
	StateCreated State = "created"
	// StateStarted indicates background relay activity is running.
	StateStarted State = "started"
	// StateStopped indicates the client was started and then stopped. It can
	// be started again or destroyed.
	StateStopped State = "stopped"
	// StateDestroyed is terminal, the engine resource has been released.
	StateDestroyed State = "destroyed"
)

// Config is the configuration for the client.
type Config struct {
	Engine relay.Engine
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "client.Client"})

	return nil
}

// Client owns exactly one engine handle and serializes every operation on
// it. The handle exists only while the state is created, started or stopped,
// destruction releases it exactly once and is irreversible.
//
// All methods are safe for concurrent use: a single mutex makes the state
// check and the engine call atomic, since transitions are not naturally
// atomic across the engine boundary.
type Client struct {
	engine relay.Engine
	logger log.Logger

	mu        sync.Mutex
	state     State
	handle    relay.Handle
	hasHandle bool
}

// New creates a new client in the uninitialized state. No engine resource is
// allocated until Create.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		engine: cfg.Engine,
		logger: cfg.Logger,
		state:  StateUninitialized,
	}, nil
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Create allocates the engine resource. Only legal from the uninitialized
// state: a destroyed client cannot be recreated and creating twice fails.
func (c *Client) Create(verbose bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateDestroyed:
		return fmt.Errorf("could not create client: %w", model.Describe(model.CodeInvalidHandle))
	case StateUninitialized:
	default:
		return fmt.Errorf("client already created: %w", model.ErrCreateFailed)
	}

	h, code := c.engine.Create(verbose)
	if err := model.Describe(code); err != nil {
		// Never leak a handle handed out together with a failure code.
		if h != 0 {
			c.engine.Destroy(h)
		}
		return fmt.Errorf("could not create client: %w", err)
	}

	c.handle = h
	c.hasHandle = true
	c.state = StateCreated

	c.logger.Debugf("Created client (verbose: %t)", verbose)
	return nil
}

// DeviceID returns the device identifier. Available from creation until
// destruction.
func (c *Client) DeviceID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasHandle {
		return "", fmt.Errorf("could not get device ID: %w", model.Describe(model.CodeInvalidHandle))
	}

	return c.engine.DeviceID(c.handle), nil
}

// SetDiscoveryURL validates and forwards the discovery URL to the engine.
// Configuration is static once the client has been started.
func (c *Client) SetDiscoveryURL(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.configurable(); err != nil {
		return fmt.Errorf("could not set discovery URL: %w", err)
	}
	if url == "" {
		return fmt.Errorf("could not set discovery URL: %w", model.Describe(model.CodeNullParam))
	}

	if err := model.Describe(c.engine.SetDiscoveryURL(c.handle, url)); err != nil {
		return fmt.Errorf("could not set discovery URL: %w", err)
	}

	return nil
}

// SetPartnerID forwards the optional partner identifier to the engine.
func (c *Client) SetPartnerID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.configurable(); err != nil {
		return fmt.Errorf("could not set partner ID: %w", err)
	}

	if err := model.Describe(c.engine.SetPartnerID(c.handle, id)); err != nil {
		return fmt.Errorf("could not set partner ID: %w", err)
	}

	return nil
}

// AddProxy validates a proxy URL and forwards its canonical form to the
// engine. An invalid proxy never reaches the engine and mutates nothing.
func (c *Client) AddProxy(rawURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.configurable(); err != nil {
		return fmt.Errorf("could not add proxy: %w", err)
	}

	p, err := model.ParseProxy(rawURL)
	if err != nil {
		return fmt.Errorf("could not add proxy: %w", err)
	}

	if err := model.Describe(c.engine.AddProxy(c.handle, p.String())); err != nil {
		return fmt.Errorf("could not add proxy: %w", err)
	}

	return nil
}

// Configure applies a full options set in order: discovery URL, partner ID,
// then each proxy in insertion order. The options are frozen on success so
// the applied configuration cannot drift afterwards.
func (c *Client) Configure(opts *model.Options) error {
	if opts == nil {
		return fmt.Errorf("could not configure: %w", model.Describe(model.CodeNullParam))
	}

	if err := c.SetDiscoveryURL(opts.DiscoveryURL()); err != nil {
		return err
	}

	if opts.PartnerID() != "" {
		if err := c.SetPartnerID(opts.PartnerID()); err != nil {
			return err
		}
	}

	for _, p := range opts.Proxies() {
		if err := c.AddProxy(p.String()); err != nil {
			return err
		}
	}

	opts.Freeze()
	return nil
}

// Start begins background relay activity. Legal from created, and from
// stopped as a restart: the wrapper permits the transition and surfaces the
// engine's code if the engine rejects it.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasHandle {
		return fmt.Errorf("could not start: %w", model.Describe(model.CodeInvalidHandle))
	}
	if c.state == StateStarted {
		return fmt.Errorf("could not start: %w", model.Describe(model.CodeAlreadyStarted))
	}

	if err := model.Describe(c.engine.Start(c.handle)); err != nil {
		return fmt.Errorf("could not start: %w", err)
	}

	c.state = StateStarted
	c.logger.Infof("Client started")
	return nil
}

// Stop requests background activity to halt. Only legal while started,
// stopping twice fails with not started instead of corrupting state. Stop is
// a request, not an instant guarantee: poll Stats().Connected to confirm.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasHandle {
		return fmt.Errorf("could not stop: %w", model.Describe(model.CodeInvalidHandle))
	}
	if c.state != StateStarted {
		return fmt.Errorf("could not stop: %w", model.Describe(model.CodeNotStarted))
	}

	if err := model.Describe(c.engine.Stop(c.handle)); err != nil {
		return fmt.Errorf("could not stop: %w", err)
	}

	c.state = StateStopped
	c.logger.Infof("Client stopped")
	return nil
}

// Destroy releases the engine resource exactly once and moves to the
// terminal destroyed state. Idempotent: destroying an already destroyed
// client is a no-op. Never fails at the wrapper level, engine codes are
// logged instead of surfaced.
func (c *Client) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDestroyed {
		return
	}

	if c.hasHandle {
		if code := c.engine.Destroy(c.handle); code != model.CodeOK {
			c.logger.Warningf("Engine destroy returned code %d: %s", code, model.Text(code))
		}
		c.handle = 0
		c.hasHandle = false
	}

	c.state = StateDestroyed
	c.logger.Infof("Client destroyed")
}

// Stats reads one statistics snapshot. Only legal while started. The
// snapshot decode never fails: malformed sub-documents degrade to empty
// structures with a recorded warning.
func (c *Client) Stats() (model.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasHandle {
		return model.Stats{}, fmt.Errorf("could not get stats: %w", model.Describe(model.CodeInvalidHandle))
	}
	if c.state != StateStarted {
		return model.Stats{}, fmt.Errorf("could not get stats: %w", model.Describe(model.CodeNotStarted))
	}

	raw, code := c.engine.Stats(c.handle)
	if err := model.Describe(code); err != nil {
		return model.Stats{}, fmt.Errorf("could not get stats: %w", err)
	}

	stats := model.NewStats(raw)
	for _, w := range stats.DecodeWarnings {
		c.logger.Warningf("Stats sub-document decode degraded: %s", w)
	}

	return stats, nil
}

// Version returns the engine version string. Callable in any state, never
// fails.
func (c *Client) Version() string {
	return c.engine.Version()
}

// ErrorText returns the catalog text for a result code. Callable in any
// state.
func (c *Client) ErrorText(code model.Code) string {
	return model.Text(code)
}

// configurable reports whether configuration setters are legal in the
// current state. Callers must hold the mutex.
func (c *Client) configurable() error {
	if !c.hasHandle {
		return model.Describe(model.CodeInvalidHandle)
	}
	if c.state == StateStarted {
		return model.Describe(model.CodeAlreadyStarted)
	}
	return nil
}
