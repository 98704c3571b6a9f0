package native

import "github.com/prx-network/relayleaf/internal/log"

// EngineConfig is the configuration for the native engine binding.
type EngineConfig struct {
	Logger log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "relay.Native"})
	return nil
}
