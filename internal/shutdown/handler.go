// Package shutdown coordinates graceful teardown: registered steps run in
// order on SIGINT/SIGTERM, with a forced exit after a timeout.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yourusername/wabot/internal/output"
)

// Handler manages graceful shutdown of the bot
type Handler struct {
	logger        output.Logger
	shutdownFuncs []func() error
	mu            sync.Mutex
	shutdownChan  chan struct{}
	signalChan    chan os.Signal
	forceTimeout  time.Duration
	shutdownOnce  sync.Once
}

// NewHandler creates a shutdown handler listening for SIGINT and SIGTERM
func NewHandler(logger output.Logger, forceTimeout time.Duration) *Handler {
	h := &Handler{
		logger:       logger,
		shutdownChan: make(chan struct{}),
		signalChan:   make(chan os.Signal, 1),
		forceTimeout: forceTimeout,
	}
	signal.Notify(h.signalChan, syscall.SIGINT, syscall.SIGTERM)
	return h
}

// RegisterShutdownFunc registers a step to run during shutdown. Steps run
// in registration order.
func (h *Handler) RegisterShutdownFunc(fn func() error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdownFuncs = append(h.shutdownFuncs, fn)
}

// WaitForShutdown blocks until a shutdown signal is received
func (h *Handler) WaitForShutdown() {
	sig := <-h.signalChan
	h.logger.Info("received signal: %v", sig)
	h.Shutdown()
}

// Shutdown runs the registered steps, giving up after the force timeout
func (h *Handler) Shutdown() {
	h.shutdownOnce.Do(func() {
		h.logger.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), h.forceTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			h.executeShutdownFuncs()
			close(done)
		}()

		select {
		case <-done:
			h.logger.Success("graceful shutdown completed")
		case <-ctx.Done():
			h.logger.Warning("forced shutdown after timeout")
		}

		close(h.shutdownChan)
	})
}

func (h *Handler) executeShutdownFuncs() {
	h.mu.Lock()
	funcs := make([]func() error, len(h.shutdownFuncs))
	copy(funcs, h.shutdownFuncs)
	h.mu.Unlock()

	for i, fn := range funcs {
		if err := fn(); err != nil {
			h.logger.Error("shutdown step %d failed: %v", i+1, err)
		}
	}
}

// Done returns a channel that is closed when shutdown has completed
func (h *Handler) Done() <-chan struct{} {
	return h.shutdownChan
}

// Stop stops listening for signals
func (h *Handler) Stop() {
	signal.Stop(h.signalChan)
	close(h.signalChan)
}
