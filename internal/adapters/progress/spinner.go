package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// SpinnerSink renders progress events as a spinner on stderr
type SpinnerSink struct {
	mu             sync.Mutex
	out            io.Writer
	spinner        *spinner.Spinner
	currentStage   usecase.ExecutionStage
	stageStartTime time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Stage != r.currentStage {
		r.completeCurrentStage()
		r.currentStage = event.Stage
		r.stageStartTime = time.Now()
	}

	if event.Stage == usecase.StageCompleted {
		r.spinner.Stop()
		return
	}

	if event.Spinner {
		r.spinner.Suffix = fmt.Sprintf(" %s %s", color.New(color.FgYellow).Sprint(event.Stage), event.Message)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// completeCurrentStage prints a line for the stage that just finished
func (r *SpinnerSink) completeCurrentStage() {
	if r.currentStage == "" {
		return
	}
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	elapsed := time.Since(r.stageStartTime).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s (%s)\n", color.New(color.FgGreen).Sprint("✓"), r.currentStage, elapsed)
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.println(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.println(color.New(color.FgRed), message)
}

func (r *SpinnerSink) println(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	// Restart spinner if it was active
	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
