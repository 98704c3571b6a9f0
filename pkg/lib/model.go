package lib

import (
	"github.com/prx-network/relayleaf/internal/client"
	"github.com/prx-network/relayleaf/internal/model"
)

// Client is the relay client handle: a state machine over exactly one
// engine-owned resource.
//
// The lifecycle is:
//
//	uninitialized -> created -> started <-> stopped -> destroyed
//
// Destroyed is terminal, every operation on a destroyed client fails with
// [ErrInvalidHandle]. A Client is safe for concurrent use.
type Client = client.Client

// State is the lifecycle state of a client handle.
type State = client.State

const (
	// StateUninitialized indicates no engine resource has been created yet.
	StateUninitialized = client.StateUninitialized
	// StateCreated indicates the engine resource exists but is not running.
	StateCreated = client.StateCreated
	// StateStarted indicates background relay activity is running.
	StateStarted = client.StateStarted
	// StateStopped indicates the client was started and then stopped.
	StateStopped = client.StateStopped
	// StateDestroyed is terminal, the engine resource has been released.
	StateDestroyed = client.StateDestroyed
)

// Options is the client configuration set: discovery URL, optional partner
// ID, the ordered proxy chain and the engine verbosity flag. It is frozen
// when applied via [Client.Configure].
type Options = model.Options

// NewOptions returns an options set with safe defaults.
func NewOptions() *Options { return model.NewOptions() }

// DefaultDiscoveryURL is the production endpoint used to fetch relay nodes
// when no discovery URL is set.
const DefaultDiscoveryURL = model.DefaultDiscoveryURL

// Proxy is the parsed and validated form of a proxy URL.
type Proxy = model.Proxy

// ParseProxy parses and validates a proxy URL without performing any I/O.
func ParseProxy(raw string) (Proxy, error) { return model.ParseProxy(raw) }

// Stats is an immutable snapshot of one statistics read.
type Stats = model.Stats

// ExitPoint is a relay network egress node as reported in statistics.
type ExitPoint = model.ExitPoint

// Code is a raw result code of the native relay engine.
type Code = model.Code

// Failure kinds surfaced by client operations, matchable with errors.Is.
var (
	ErrNullParam      = model.ErrNullParam
	ErrInvalidHandle  = model.ErrInvalidHandle
	ErrCreateFailed   = model.ErrCreateFailed
	ErrStartFailed    = model.ErrStartFailed
	ErrAlreadyStarted = model.ErrAlreadyStarted
	ErrNotStarted     = model.ErrNotStarted
	ErrInvalidProxy   = model.ErrInvalidProxy
	ErrInternal       = model.ErrInternal
	ErrUnknown        = model.ErrUnknown
	ErrNotValid       = model.ErrNotValid
	ErrLocked         = model.ErrLocked
)
