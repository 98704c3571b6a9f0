//go:build relaynative

package native

/*
#cgo LDFLAGS: -lrelay_leaf
#include <stdbool.h>
#include <stdlib.h>

// Native statistics struct. Field order must match the C definition exactly.
// All char* fields are UTF-8 strings allocated by the library and owned by
// the struct until relay_leaf_free_stats.
typedef struct {
	long long uptime_seconds;
	long long total_streams;
	long long bytes_sent;
	long long bytes_received;
	long long reconnect_count;
	char *last_error;
	char *exit_points_json;
	char *node_addresses_json;
	int active_streams;
	int connected_nodes;
	bool connected;
} relay_leaf_stats;

extern int relay_leaf_create(bool verbose, void **out_handle);
extern int relay_leaf_destroy(void *handle);
extern int relay_leaf_set_discovery_url(void *handle, const char *url);
extern int relay_leaf_set_partner_id(void *handle, const char *partner_id);
extern int relay_leaf_add_proxy(void *handle, const char *proxy_url);
extern int relay_leaf_start(void *handle);
extern int relay_leaf_stop(void *handle);
extern int relay_leaf_get_stats(void *handle, relay_leaf_stats *out_stats);
extern void relay_leaf_free_stats(relay_leaf_stats *stats);
extern void relay_leaf_free_string(char *s);
extern char *relay_leaf_version(void);
extern char *relay_leaf_error_message(int code);
extern char *relay_leaf_get_device_id(void *handle);
*/
import "C"

import (
	"unsafe"

	"github.com/prx-network/relayleaf/internal/log"
	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/relay"
)

// Engine binds the relay_leaf shared library entry points. All string
// outputs are copied into Go memory and the native allocations are freed
// before returning, so no native pointer escapes this package.
type Engine struct {
	logger log.Logger
}

// NewEngine creates the native engine binding.
func NewEngine(cfg EngineConfig) (relay.Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	return &Engine{logger: cfg.Logger}, nil
}

// Create allocates a new native client instance.
func (e *Engine) Create(verbose bool) (relay.Handle, model.Code) {
	var h unsafe.Pointer
	rc := C.relay_leaf_create(C.bool(verbose), &h)
	return relay.Handle(uintptr(h)), model.Code(rc)
}

// Destroy releases a native client instance.
func (e *Engine) Destroy(h relay.Handle) model.Code {
	return model.Code(C.relay_leaf_destroy(unsafe.Pointer(h)))
}

// SetDiscoveryURL sets the discovery URL on a native client.
func (e *Engine) SetDiscoveryURL(h relay.Handle, url string) model.Code {
	cURL := C.CString(url)
	defer C.free(unsafe.Pointer(cURL))
	return model.Code(C.relay_leaf_set_discovery_url(unsafe.Pointer(h), cURL))
}

// SetPartnerID sets the partner identifier on a native client.
func (e *Engine) SetPartnerID(h relay.Handle, id string) model.Code {
	cID := C.CString(id)
	defer C.free(unsafe.Pointer(cID))
	return model.Code(C.relay_leaf_set_partner_id(unsafe.Pointer(h), cID))
}

// AddProxy appends a proxy URL on a native client.
func (e *Engine) AddProxy(h relay.Handle, url string) model.Code {
	cURL := C.CString(url)
	defer C.free(unsafe.Pointer(cURL))
	return model.Code(C.relay_leaf_add_proxy(unsafe.Pointer(h), cURL))
}

// Start starts a native client.
func (e *Engine) Start(h relay.Handle) model.Code {
	return model.Code(C.relay_leaf_start(unsafe.Pointer(h)))
}

// Stop stops a native client.
func (e *Engine) Stop(h relay.Handle) model.Code {
	return model.Code(C.relay_leaf_stop(unsafe.Pointer(h)))
}

// DeviceID returns the device identifier of a native client.
func (e *Engine) DeviceID(h relay.Handle) string {
	return goStringAndFree(C.relay_leaf_get_device_id(unsafe.Pointer(h)))
}

// Stats reads the native statistics struct and copies it out.
func (e *Engine) Stats(h relay.Handle) (model.RawStats, model.Code) {
	var cStats C.relay_leaf_stats
	rc := C.relay_leaf_get_stats(unsafe.Pointer(h), &cStats)
	if rc != 0 {
		return model.RawStats{}, model.Code(rc)
	}

	raw := model.RawStats{
		Connected:         bool(cStats.connected),
		ConnectedNodes:    int(cStats.connected_nodes),
		UptimeSeconds:     int64(cStats.uptime_seconds),
		ActiveStreams:     int(cStats.active_streams),
		TotalStreams:      int64(cStats.total_streams),
		BytesSent:         int64(cStats.bytes_sent),
		BytesReceived:     int64(cStats.bytes_received),
		ReconnectCount:    int64(cStats.reconnect_count),
		LastError:         goString(cStats.last_error),
		ExitPointsJSON:    goString(cStats.exit_points_json),
		NodeAddressesJSON: goString(cStats.node_addresses_json),
	}

	// String pointers inside the struct belong to the struct itself.
	C.relay_leaf_free_stats(&cStats)

	return raw, model.CodeOK
}

// Version returns the native library version string.
func (e *Engine) Version() string {
	v := goStringAndFree(C.relay_leaf_version())
	if v == "" {
		return "unknown"
	}
	return v
}

// ErrorText returns the native library's text for a result code.
func (e *Engine) ErrorText(code model.Code) string {
	return goStringAndFree(C.relay_leaf_error_message(C.int(code)))
}

// goString copies a native UTF-8 string without freeing it. Used for
// pointers owned by relay_leaf_stats, those are released via
// relay_leaf_free_stats.
func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// goStringAndFree copies a library-allocated UTF-8 string and frees the
// native memory via relay_leaf_free_string.
func goStringAndFree(s *C.char) string {
	if s == nil {
		return ""
	}
	result := C.GoString(s)
	C.relay_leaf_free_string(s)
	return result
}
