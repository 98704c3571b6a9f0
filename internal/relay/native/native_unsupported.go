//go:build !relaynative

package native

import (
	"fmt"

	"github.com/prx-network/relayleaf/internal/relay"
)

// NewEngine fails on builds without the native library binding. Rebuild with
// `-tags relaynative` (requires cgo and the relay_leaf shared library) to get
// the real engine.
func NewEngine(cfg EngineConfig) (relay.Engine, error) {
	return nil, fmt.Errorf("built without native engine support, rebuild with -tags relaynative")
}
