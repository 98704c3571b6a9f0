package model

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultDiscoveryURL is the production endpoint used to fetch relay nodes
// when no discovery URL is set.
const DefaultDiscoveryURL = "https://api.prx.network/public/relay/nodes"

// Options is the client configuration set: discovery URL, optional partner
// ID, the ordered proxy chain and the engine verbosity flag.
//
// Options are mutable until frozen. The client freezes the set when it is
// applied, after that every mutator fails with ErrLocked so configuration
// stays static once the client is running.
type Options struct {
	discoveryURL string
	partnerID    string
	proxies      []Proxy
	verbose      bool
	frozen       bool
}

// NewOptions returns an options set with safe defaults.
func NewOptions() *Options {
	return &Options{
		discoveryURL: DefaultDiscoveryURL,
	}
}

// SetDiscoveryURL sets the discovery URL used to fetch relay nodes. The URL
// must be a non-empty http(s) URL.
func (o *Options) SetDiscoveryURL(rawURL string) error {
	if o.frozen {
		return fmt.Errorf("cannot set discovery URL: %w", ErrLocked)
	}

	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("discovery URL is empty: %w", ErrNotValid)
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("discovery URL %q is not a valid http(s) URL: %w", rawURL, ErrNotValid)
	}

	o.discoveryURL = rawURL
	return nil
}

// SetPartnerID sets the optional partner identifier.
func (o *Options) SetPartnerID(id string) error {
	if o.frozen {
		return fmt.Errorf("cannot set partner ID: %w", ErrLocked)
	}

	o.partnerID = id
	return nil
}

// AddProxy validates and appends a proxy URL to the chain. The append is
// atomic, on a parse failure the proxy list is left untouched. Insertion
// order defines the proxy chain order.
func (o *Options) AddProxy(rawURL string) error {
	if o.frozen {
		return fmt.Errorf("cannot add proxy: %w", ErrLocked)
	}

	p, err := ParseProxy(rawURL)
	if err != nil {
		return err
	}

	o.proxies = append(o.proxies, p)
	return nil
}

// SetVerbose enables verbose logging inside the native engine.
func (o *Options) SetVerbose(verbose bool) error {
	if o.frozen {
		return fmt.Errorf("cannot set verbose: %w", ErrLocked)
	}

	o.verbose = verbose
	return nil
}

// Freeze makes the options immutable. Freezing twice is a no-op.
func (o *Options) Freeze() { o.frozen = true }

// Frozen returns whether the options have been frozen.
func (o *Options) Frozen() bool { return o.frozen }

// DiscoveryURL returns the configured discovery URL.
func (o *Options) DiscoveryURL() string { return o.discoveryURL }

// PartnerID returns the configured partner ID, empty if not set.
func (o *Options) PartnerID() string { return o.partnerID }

// Proxies returns a copy of the proxy chain in insertion order.
func (o *Options) Proxies() []Proxy {
	proxies := make([]Proxy, len(o.proxies))
	copy(proxies, o.proxies)
	return proxies
}

// Verbose returns the engine verbosity flag.
func (o *Options) Verbose() bool { return o.verbose }
