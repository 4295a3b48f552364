// Package shutdown runs registered cleanup functions once a process is told to stop.
package shutdown

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/psantana5/flexdash/pkg/logging"
)

// Func releases one resource within the deadline carried by ctx
type Func func(ctx context.Context) error

type entry struct {
	name string
	fn   Func
}

// Manager handles graceful shutdown
type Manager struct {
	mu      sync.Mutex
	entries []entry
	timeout time.Duration
	logger  *logging.Logger
	once    sync.Once
}

// New creates a new shutdown manager. Every Shutdown call shares one timeout.
func New(timeout time.Duration, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{timeout: timeout, logger: logger.WithComponent("shutdown")}
}

// Register adds a shutdown function. Functions run in reverse order of registration.
func (m *Manager) Register(name string, fn Func) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry{name: name, fn: fn})
}

// Wait blocks until SIGINT/SIGTERM or ctx is done, then runs Shutdown.
func (m *Manager) Wait(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	m.logger.Info("Initiating graceful shutdown")
	return m.Shutdown()
}

// Shutdown executes all registered functions once. Later calls return nil.
// All functions run even if some fail; the first error is returned.
func (m *Manager) Shutdown() error {
	var first error
	m.once.Do(func() {
		m.mu.Lock()
		entries := append([]entry(nil), m.entries...)
		m.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if err := e.fn(ctx); err != nil {
				m.logger.Error("Shutdown step failed", logging.Fields{"step": e.name, "error": err})
				if first == nil {
					first = fmt.Errorf("%s: %w", e.name, err)
				}
				continue
			}
			m.logger.Debug("Shutdown step complete", logging.Fields{"step": e.name})
		}
		m.logger.Info("Graceful shutdown complete")
	})
	return first
}

// StopHTTPServer creates a shutdown function for an http.Server
func StopHTTPServer(server interface{ Shutdown(context.Context) error }) Func {
	return func(ctx context.Context) error {
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to stop HTTP server: %w", err)
		}
		return nil
	}
}
