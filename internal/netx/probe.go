// Package netx implements the connectivity probe gating synchronization.
//
// A link can be up while the remote store host is unreachable (captive
// portals, DNS failures, the backend being down), so the probe checks both:
// a TCP dial to the remote host and an HTTP round-trip. Any HTTP response,
// including an auth rejection, proves the destination answers.
package netx

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPProbe answers "is the remote store reachable right now?".
// The zero value is not usable; construct with NewHTTPProbe.
type HTTPProbe struct {
	target  *url.URL
	timeout time.Duration
	client  *http.Client
	dial    func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewHTTPProbe builds a probe against targetURL (typically the remote store
// base URL). timeout bounds the whole check; zero means 3 seconds.
func NewHTTPProbe(targetURL string, timeout time.Duration) (*HTTPProbe, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	d := &net.Dialer{Timeout: timeout}
	return &HTTPProbe{
		target:  u,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		dial:    d.DialContext,
	}, nil
}

// Reachable reports whether both the TCP path to the host and an HTTP
// round-trip succeed within the probe timeout. It never returns an error:
// an unreachable remote is an expected condition, not a failure.
func (p *HTTPProbe) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	host := p.target.Host
	if p.target.Port() == "" {
		port := "443"
		if p.target.Scheme == "http" {
			port = "80"
		}
		host = net.JoinHostPort(p.target.Hostname(), port)
	}

	conn, err := p.dial(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.target.String(), nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()

	// Any status code counts: even 401/404 means the destination answered.
	return true
}
