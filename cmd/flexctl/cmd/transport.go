package cmd

import (
	"net/http"
	"time"

	"github.com/psantana5/flexdash/pkg/logging"
)

// bearerTransport adds an Authorization header to every request
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+t.token)
	return t.next.RoundTrip(out)
}

// loggingTransport logs one line per hub request for --verbose
type loggingTransport struct {
	logger *logging.Logger
	next   http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	fields := logging.Fields{
		"method":      req.Method,
		"url":         req.URL.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		t.logger.Warn("Hub request failed", fields)
		return nil, err
	}
	fields["status"] = resp.StatusCode
	t.logger.Debug("Hub request", fields)
	return resp, nil
}
