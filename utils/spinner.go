package utils

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
)

// Spinner initializes the process indicator.
type Spinner struct {
	w        io.Writer
	au       aurora.Aurora
	delay    time.Duration
	stopChan chan struct{}
	done     sync.WaitGroup
}

// NewSpinner instantiates a new Spinner writing to w. Colors are only
// emitted when colors is set, usually when w is a terminal.
func NewSpinner(w io.Writer, colors bool) *Spinner {
	return &Spinner{
		w:     w,
		au:    aurora.NewAurora(colors),
		delay: 100 * time.Millisecond,
	}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{})
	s.done.Add(1)

	go func() {
		defer s.done.Done()
		for {
			for _, r := range `-\|/` {
				fmt.Fprintf(s.w, "\r%s %s", message, s.au.Green(string(r)))
				select {
				case <-s.stopChan:
					fmt.Fprint(s.w, "\r")
					return
				case <-time.After(s.delay):
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits until it has stopped writing.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	close(s.stopChan)
	s.done.Wait()
	s.stopChan = nil
}
