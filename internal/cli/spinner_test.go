package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Connecting to redis...")
	s.out = &out
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Connecting to redis...") {
		t.Errorf("spinner output %q should contain the message", out.String())
	}
}

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner("Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	_ = s.Cancelled()
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	// Cancel the context
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()

	// Wait for timeout
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled due to timeout
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Testing success...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}

func TestSpinnerShowsElapsed(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Waiting")
	s.out = &out
	s.draw("⠋", 2500*time.Millisecond)
	if !strings.Contains(out.String(), "Waiting 2s") {
		t.Errorf("spinner output %q should show elapsed seconds", out.String())
	}
}

func TestWithSpinner(t *testing.T) {
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	defer func() { stdout = prev }()

	if err := withSpinner(context.Background(), "Working", "Worked", "Broke", func() error { return nil }); err != nil {
		t.Fatalf("withSpinner: %v", err)
	}
	if !strings.Contains(buf.String(), "Worked") {
		t.Errorf("output %q should report success", buf.String())
	}

	buf.Reset()
	boom := errors.New("boom")
	if err := withSpinner(context.Background(), "Working", "Worked", "Broke", func() error { return boom }); err != boom {
		t.Fatalf("withSpinner error = %v, want %v", err, boom)
	}
	if !strings.Contains(buf.String(), "Broke") {
		t.Errorf("output %q should report failure", buf.String())
	}
}

func TestNewSpinnerWithContextNilParent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Test")
	s.Start()
	s.Stop()
}
