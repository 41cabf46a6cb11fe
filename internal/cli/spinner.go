package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line with the elapsed time while a long step
// runs. It stops on Stop or when its parent context ends.
type spinner struct {
	out     io.Writer
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started bool
	begin   time.Time

	mu    sync.Mutex
	width int // widest line drawn so far
}

func newSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		out:     out,
		message: message,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins drawing. Start and Stop must be called from the same goroutine.
func (s *spinner) Start() {
	s.started = true
	s.begin = time.Now()
	go s.run()
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *spinner) draw(frame string) {
	elapsed := time.Since(s.begin).Truncate(100 * time.Millisecond)
	line := fmt.Sprintf("%s %s %s",
		styleIconSpinner.Render(frame),
		StyleDim.Render(s.message),
		StyleDim.Render(elapsed.String()))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprintf(s.out, "\r%s", line)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears the line. It may be called repeatedly,
// and before Start.
func (s *spinner) Stop() {
	s.cancel()
	if s.started {
		<-s.stopped
	}
	s.clear()
}

// StopWithError stops the spinner and prints message as an error line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended, as opposed to Stop.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
