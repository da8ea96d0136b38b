package utils

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

var (
	spinnerMu sync.Mutex
	active    *spinner.Spinner
)

// writerIsTTY returns true if w exposes a terminal file descriptor
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// StartSpinner shows a progress spinner on w while the scan runs. It does
// nothing when w is not a terminal or when disabled; callers disable it while
// log lines are written to the same terminal.
func StartSpinner(w io.Writer, suffix string, disabled bool) {
	if disabled || !writerIsTTY(w) {
		return
	}

	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if active != nil {
		return
	}
	active = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	active.Suffix = " " + suffix
	active.Start()
}

// StopSpinner stops the spinner started by StartSpinner, if any.
func StopSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if active == nil {
		return
	}
	active.Stop()
	active = nil
}
