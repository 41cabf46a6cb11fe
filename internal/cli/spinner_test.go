package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
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

func TestSpinnerDraws(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Composing 2D spring figure...")
	s.Start()
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Composing 2D spring figure...") {
		t.Errorf("spinner output = %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner did not clear its line: %q", got)
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 30*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			s := newSpinner(ctx, &syncBuffer{}, "Rendering...")
			s.Start()
			if tt.name == "cancel" {
				cancel()
			}
			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner kept running after its context ended")
			}
			cancel()
			if !s.Cancelled() {
				t.Error("Cancelled() = false after parent ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStop(t *testing.T) {
	var out syncBuffer
	idle := newSpinner(context.Background(), &out, "never started")
	idle.Stop()
	if out.String() != "" {
		t.Errorf("unstarted spinner wrote %q", out.String())
	}

	s := newSpinner(context.Background(), &syncBuffer{}, "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
}
