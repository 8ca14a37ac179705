package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Verify Shutdown completes without panic.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	stopped := make(chan struct{}, 1)
	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(stopped) }, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		<-stopped
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}
