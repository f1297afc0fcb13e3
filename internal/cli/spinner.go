package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// spinnerInterval is the animation frame rate. The external PlantUML
// renderer can run for several seconds on a large closure, which is the
// only operation slow enough to warrant a spinner.
const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress indicator on stderr until stopped or until
// its context is cancelled (ctrl-c during a render).
type spinner struct {
	text    string
	ctx     context.Context
	started atomic.Bool
	halt    sync.Once
	done    chan struct{}
	drained chan struct{}
	mu      sync.Mutex
}

// newSpinner creates a spinner bound to ctx. It does not animate until
// Start is called.
func newSpinner(ctx context.Context, text string) *spinner {
	return &spinner{
		text:    text,
		ctx:     ctx,
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *spinner) Start() {
	s.started.Store(true)
	go func() {
		defer close(s.drained)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), styleDim.Render(s.text))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call repeatedly,
// or before Start.
func (s *spinner) Stop() {
	s.halt.Do(func() { close(s.done) })
	if s.started.Load() {
		<-s.drained
	}
	s.clearLine()
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.text)+4))
}

// StopWithSuccess stops the spinner and prints a success line in its place.
func (s *spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the surrounding context was cancelled, as
// opposed to an orderly Stop.
func (s *spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
