package fake

import (
	"crypto/rand"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/prx-network/relayleaf/internal/log"
	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/relay"
)

// EngineConfig is the configuration for the fake engine.
type EngineConfig struct {
	Logger log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "relay.Fake"})
	return nil
}

// instance is the per-handle state of a fake client.
type instance struct {
	verbose      bool
	deviceID     string
	discoveryURL string
	partnerID    string
	proxies      []string
	started      bool
	startedAt    time.Time
	reconnects   int64
	sessions     int64
}

// Engine is a fake in-memory implementation of relay.Engine. It simulates
// the relay engine lifecycle and statistics without any network activity,
// honoring the same result-code semantics as the native library.
type Engine struct {
	instances  map[relay.Handle]*instance
	nextHandle relay.Handle
	statsResp  *model.RawStats
	mu         sync.Mutex
	logger     log.Logger
}

// NewEngine creates a new fake engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	return &Engine{
		instances:  map[relay.Handle]*instance{},
		nextHandle: 1,
		logger:     cfg.Logger,
	}, nil
}

// SetStatsResponse forces Stats to return the given raw record for every
// live handle. Used by tests to inject arbitrary boundary data, including
// malformed JSON sub-documents.
func (e *Engine) SetStatsResponse(raw model.RawStats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statsResp = &raw
}

// Create allocates a new fake client with a fresh device ID.
func (e *Engine) Create(verbose bool) (relay.Handle, model.Code) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.nextHandle
	e.nextHandle++

	deviceID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	e.instances[h] = &instance{
		verbose:      verbose,
		deviceID:     deviceID,
		discoveryURL: model.DefaultDiscoveryURL,
	}

	e.logger.Debugf("Created fake client %d (device: %s)", h, deviceID)
	return h, model.CodeOK
}

// Destroy releases a fake client.
func (e *Engine) Destroy(h relay.Handle) model.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.instances[h]; !ok {
		return model.CodeInvalidHandle
	}

	delete(e.instances, h)
	e.logger.Debugf("Destroyed fake client %d", h)
	return model.CodeOK
}

// SetDiscoveryURL sets the discovery URL of a fake client.
func (e *Engine) SetDiscoveryURL(h relay.Handle, rawURL string) model.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return model.CodeInvalidHandle
	}
	if rawURL == "" {
		return model.CodeNullParam
	}
	if inst.started {
		return model.CodeAlreadyStarted
	}

	inst.discoveryURL = rawURL
	return model.CodeOK
}

// SetPartnerID sets the partner identifier of a fake client.
func (e *Engine) SetPartnerID(h relay.Handle, id string) model.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return model.CodeInvalidHandle
	}
	if inst.started {
		return model.CodeAlreadyStarted
	}

	inst.partnerID = id
	return model.CodeOK
}

// AddProxy appends a proxy URL to a fake client's chain.
func (e *Engine) AddProxy(h relay.Handle, rawURL string) model.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return model.CodeInvalidHandle
	}
	if rawURL == "" {
		return model.CodeNullParam
	}
	if inst.started {
		return model.CodeAlreadyStarted
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return model.CodeInvalidProxy
	}

	inst.proxies = append(inst.proxies, rawURL)
	return model.CodeOK
}

// Start begins a fake session. Session counters reset on every start.
func (e *Engine) Start(h relay.Handle) model.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return model.CodeInvalidHandle
	}
	if inst.started {
		return model.CodeAlreadyStarted
	}

	inst.started = true
	inst.startedAt = time.Now()
	inst.sessions++

	e.logger.Infof("Started fake client %d (session %d)", h, inst.sessions)
	return model.CodeOK
}

// Stop halts a fake session.
func (e *Engine) Stop(h relay.Handle) model.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return model.CodeInvalidHandle
	}
	if !inst.started {
		return model.CodeNotStarted
	}

	inst.started = false
	inst.reconnects = 0

	e.logger.Infof("Stopped fake client %d", h)
	return model.CodeOK
}

// DeviceID returns the device ID of a fake client, empty for dead handles.
func (e *Engine) DeviceID(h relay.Handle) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return ""
	}
	return inst.deviceID
}

// Stats returns simulated statistics for a fake client.
func (e *Engine) Stats(h relay.Handle) (model.RawStats, model.Code) {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.instances[h]
	if !ok {
		return model.RawStats{}, model.CodeInvalidHandle
	}

	if e.statsResp != nil {
		return *e.statsResp, model.CodeOK
	}

	if !inst.started {
		return model.RawStats{Connected: false}, model.CodeOK
	}

	uptime := int64(time.Since(inst.startedAt).Seconds())
	exitPoints, _ := json.Marshal([]model.ExitPoint{
		{ID: "ep-1", Address: "198.51.100.10:443", Country: "NL"},
		{ID: "ep-2", Address: "203.0.113.7:443", Country: "US"},
	})
	nodeAddresses, _ := json.Marshal([]string{"192.0.2.1:4433", "192.0.2.2:4433"})

	// Deterministic byte counters derived from uptime, enough for a
	// plausible dashboard without tracking real traffic.
	return model.RawStats{
		Connected:         true,
		ConnectedNodes:    2,
		UptimeSeconds:     uptime,
		ActiveStreams:     1,
		TotalStreams:      uptime / 10,
		BytesSent:         uptime * 512,
		BytesReceived:     uptime * 2048,
		ReconnectCount:    inst.reconnects,
		LastError:         "",
		ExitPointsJSON:    string(exitPoints),
		NodeAddressesJSON: string(nodeAddresses),
	}, model.CodeOK
}

// Version returns the fake engine version string.
func (e *Engine) Version() string { return "fake-0.1.0" }

// ErrorText returns the catalog text for a result code.
func (e *Engine) ErrorText(code model.Code) string { return model.Text(code) }
