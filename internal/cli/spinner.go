package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerTick = 80 * time.Millisecond
	// spinnerShowElapsed is when the elapsed time starts being shown.
	spinnerShowElapsed = time.Second
)

// Spinner animates a status line on stderr while a slow operation (a Redis
// connection with retries) runs. It stops on Stop or when its context ends.
type Spinner struct {
	message string
	out     io.Writer

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	width int // widest line drawn so far
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops drawing once ctx ends.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     os.Stderr,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start draws frames until the spinner is stopped.
func (s *Spinner) Start() {
	start := time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)], time.Since(start))
			}
		}
	}()
}

func (s *Spinner) draw(frame string, elapsed time.Duration) {
	line := s.message
	if elapsed >= spinnerShowElapsed {
		line += " " + elapsed.Truncate(time.Second).String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(line)+2)
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
}

// Stop ends the animation and clears the line. Calling it again is a no-op.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		select {
		case <-s.stopped:
		case <-time.After(time.Second):
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// withSpinner runs fn behind a spinner and reports the outcome with ok or
// fail.
func withSpinner(ctx context.Context, message, ok, fail string, fn func() error) error {
	spin := newSpinnerWithContext(ctx, message)
	spin.Start()
	if err := fn(); err != nil {
		spin.StopWithError(fail)
		return err
	}
	spin.StopWithSuccess(ok)
	return nil
}
