package model

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// allowedProxySchemes is the closed set of proxy schemes the engine accepts.
var allowedProxySchemes = map[string]bool{
	"socks5":  true,
	"socks5h": true,
	"http":    true,
	"https":   true,
}

// Proxy is the parsed and validated form of a proxy URL. A Proxy only exists
// if parsing succeeded, so holding one means it is safe to hand to the engine.
type Proxy struct {
	Scheme   string
	Username string
	Password string
	Host     string
	Port     int
}

// ParseProxy parses and validates a proxy URL. Validation is syntactic only,
// no network resolution is performed. All failures wrap ErrInvalidProxy.
func ParseProxy(raw string) (Proxy, error) {
	if strings.TrimSpace(raw) == "" {
		return Proxy{}, fmt.Errorf("empty proxy URL: %w", ErrInvalidProxy)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Proxy{}, fmt.Errorf("could not parse proxy URL %q: %w", raw, ErrInvalidProxy)
	}

	if !allowedProxySchemes[u.Scheme] {
		return Proxy{}, fmt.Errorf("unsupported proxy scheme %q: %w", u.Scheme, ErrInvalidProxy)
	}

	host := u.Hostname()
	if host == "" {
		return Proxy{}, fmt.Errorf("proxy URL %q has no host: %w", raw, ErrInvalidProxy)
	}

	portStr := u.Port()
	if portStr == "" {
		return Proxy{}, fmt.Errorf("proxy URL %q has no port: %w", raw, ErrInvalidProxy)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return Proxy{}, fmt.Errorf("proxy port %q out of range [1, 65535]: %w", portStr, ErrInvalidProxy)
	}

	p := Proxy{
		Scheme: u.Scheme,
		Host:   host,
		Port:   port,
	}

	if u.User != nil {
		p.Username = u.User.Username()
		p.Password, _ = u.User.Password()
		// The userinfo delimiters must not survive unescaped inside the
		// credentials themselves, the engine splits on them.
		if strings.ContainsAny(p.Username, ":@") || strings.ContainsAny(p.Password, "@") {
			return Proxy{}, fmt.Errorf("proxy credentials contain unescaped delimiter: %w", ErrInvalidProxy)
		}
	}

	return p, nil
}

// String returns the canonical proxy URL forwarded to the engine.
func (p Proxy) String() string {
	u := url.URL{
		Scheme: p.Scheme,
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
	}

	switch {
	case p.Username != "" && p.Password != "":
		u.User = url.UserPassword(p.Username, p.Password)
	case p.Username != "":
		u.User = url.User(p.Username)
	}

	return u.String()
}
