package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/prx-network/relayleaf/internal/model"
)

// OptionsYAMLRepository loads client options from YAML files.
type OptionsYAMLRepository struct {
	fs fs.FS
}

// NewOptionsYAMLRepository creates a new YAML options repository.
func NewOptionsYAMLRepository(filesystem fs.FS) *OptionsYAMLRepository {
	return &OptionsYAMLRepository{fs: filesystem}
}

// GetOptions loads client options from a YAML file and returns a validated
// domain options set.
func (r *OptionsYAMLRepository) GetOptions(ctx context.Context, path string) (*model.Options, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return opts.toModel()
}

// Options represents the YAML structure for client options.
type Options struct {
	DiscoveryURL string   `yaml:"discovery_url"`
	PartnerID    string   `yaml:"partner_id"`
	Proxies      []string `yaml:"proxies"`
	Verbose      bool     `yaml:"verbose"`
}

// toModel builds a domain options set, running every value through the
// domain validators so an invalid file fails the same way invalid flags do.
func (o Options) toModel() (*model.Options, error) {
	opts := model.NewOptions()

	if o.DiscoveryURL != "" {
		if err := opts.SetDiscoveryURL(o.DiscoveryURL); err != nil {
			return nil, fmt.Errorf("invalid discovery_url: %w", err)
		}
	}

	if o.PartnerID != "" {
		if err := opts.SetPartnerID(o.PartnerID); err != nil {
			return nil, fmt.Errorf("invalid partner_id: %w", err)
		}
	}

	for _, p := range o.Proxies {
		if err := opts.AddProxy(p); err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", p, err)
		}
	}

	if err := opts.SetVerbose(o.Verbose); err != nil {
		return nil, fmt.Errorf("invalid verbose: %w", err)
	}

	return opts, nil
}
