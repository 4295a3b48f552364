package shutdown

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestShutdownOrder(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"tracing", "server", "listener"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	want := []string{"listener", "server", "tracing"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Expected order %v, got %v", want, order)
	}
}

func TestShutdownContinuesAfterError(t *testing.T) {
	m := New(time.Second, nil)
	ran := false
	boom := errors.New("boom")
	m.Register("first", func(ctx context.Context) error { ran = true; return nil })
	m.Register("second", func(ctx context.Context) error { return boom })

	err := m.Shutdown()
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if !ran {
		t.Error("Expected remaining steps to run after an error")
	}
	if err := m.Shutdown(); err != nil {
		t.Errorf("Expected second Shutdown to be a no-op, got %v", err)
	}
}

func TestShutdownDeadline(t *testing.T) {
	m := New(50*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := m.Shutdown(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestWaitReturnsOnContext(t *testing.T) {
	m := New(time.Second, nil)
	called := false
	m.Register("server", func(ctx context.Context) error { called = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if !called {
		t.Error("Expected Wait to run shutdown functions")
	}
}
