package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a progress indicator on stderr. Its message can change while
// it runs, which is how pipeline stages report where a render is.
type Spinner struct {
	ctx    context.Context
	cancel context.CancelFunc
	out    io.Writer

	mu      sync.Mutex
	message string
	width   int // widest line drawn; shorter lines are padded to it
	started bool
	done    chan struct{}
	stopped chan struct{}
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		ctx:     ctx,
		cancel:  cancel,
		out:     os.Stderr,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.message) + 2
	s.width = max(s.width, n)
	fmt.Fprintf(s.out, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), strings.Repeat(" ", s.width-n))
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, or without Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner stopped because its context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// StageHooks returns pipeline hooks that move the spinner message through
// parse, layout and render.
func (s *Spinner) StageHooks(name string) observability.PipelineHooks {
	return &stageHooks{spinner: s, name: name}
}

type stageHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
	name    string
}

func (h *stageHooks) OnParseStart(context.Context, string) {
	h.spinner.SetMessage(fmt.Sprintf("Parsing %s...", h.name))
}

func (h *stageHooks) OnLayoutStart(_ context.Context, tracks int) {
	h.spinner.SetMessage(fmt.Sprintf("Packing %s...", plural(tracks, "track")))
}

func (h *stageHooks) OnLayoutComplete(_ context.Context, rows int, _ time.Duration, err error) {
	if err == nil {
		h.spinner.SetMessage(fmt.Sprintf("Packed %s", plural(rows, "row")))
	}
}

func (h *stageHooks) OnRenderStart(_ context.Context, formats []string) {
	h.spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
}

// withStageSpinner runs fn with s receiving pipeline stage events, then
// restores the previous hooks.
func withStageSpinner(s *Spinner, name string, fn func() error) error {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(s.StageHooks(name))
	defer observability.SetPipelineHooks(prev)
	return fn()
}
