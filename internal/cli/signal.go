package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// InterruptHandler cancels the invocation context on SIGINT or SIGTERM.
// Nothing is persisted across invocations, so cancellation is the whole
// shutdown story: in-flight provider calls and git subprocesses observe
// the cancelled context and stop.
type InterruptHandler struct {
	cancel  context.CancelFunc
	sigChan chan os.Signal
}

// NewInterruptHandler creates a new interrupt handler
func NewInterruptHandler(cancel context.CancelFunc) *InterruptHandler {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	return &InterruptHandler{
		cancel:  cancel,
		sigChan: sigChan,
	}
}

// Start starts the interrupt handler in a goroutine
func (h *InterruptHandler) Start() {
	go func() {
		sig, ok := <-h.sigChan
		if !ok {
			return
		}
		fmt.Fprintf(os.Stderr, "\nReceived %s, cancelling...\n", sig)
		h.cancel()
	}()
}

// Stop stops the signal handling
func (h *InterruptHandler) Stop() {
	signal.Stop(h.sigChan)
	close(h.sigChan)
}
