package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycle while a pipeline stage runs. Kept to four quadrant
// glyphs so the line stays narrow next to the stage message.
var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const spinnerInterval = 120 * time.Millisecond

// spinner animates a status line on stderr while a slow stage (the external
// dependency query, the overlay chain) runs. It starts animating as soon as
// it is created and stops either explicitly via Stop or when the parent
// context is cancelled, clearing the line both ways so command output never
// lands mid-frame.
type spinner struct {
	message string
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// newSpinner starts a spinner bound to ctx with the given stage message.
func newSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		message: message,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

func (s *spinner) clearLine() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
}

// Stop halts the animation and clears the line. Safe to call more than once
// and after context cancellation.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
