package relay

import "github.com/prx-network/relayleaf/internal/model"

// Handle is the opaque token identifying one client instance inside the
// engine. It is only meaningful to the engine that issued it.
type Handle uintptr

// Engine is the native relay engine entry-point table. Implementations
// return raw result codes, translation into structured errors happens in the
// client layer only.
//
// The real implementation binds the relay_leaf shared library (see the
// native package), the fake package provides an in-memory simulation for
// tests and local development.
type Engine interface {
	// Create allocates a new client instance. On success the returned
	// handle is live until Destroy.
	Create(verbose bool) (Handle, model.Code)
	// Destroy releases a client instance and everything it owns.
	Destroy(h Handle) model.Code
	// SetDiscoveryURL sets the endpoint used to fetch relay nodes.
	SetDiscoveryURL(h Handle, url string) model.Code
	// SetPartnerID sets the optional partner identifier.
	SetPartnerID(h Handle, id string) model.Code
	// AddProxy appends a proxy URL to the connection chain.
	AddProxy(h Handle, url string) model.Code
	// Start begins background connection activity.
	Start(h Handle) model.Code
	// Stop requests background activity to halt.
	Stop(h Handle) model.Code
	// DeviceID returns the device identifier of a client instance, empty
	// when the handle is not live.
	DeviceID(h Handle) string
	// Stats reads the current statistics record.
	Stats(h Handle) (model.RawStats, model.Code)
	// Version returns the engine version string.
	Version() string
	// ErrorText returns the engine's text for a result code.
	ErrorText(code model.Code) string
}
