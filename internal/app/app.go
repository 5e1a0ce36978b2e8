// Package app wires the Application record spec.md §9 describes under
// "Global state": the owning value that holds the outer terminal, the
// event loop, and the log file, and that the entrypoint constructs
// exactly once. It is deliberately thin — internal/eventloop.Loop already
// holds the window pool, tag model, layout engine, dispatcher, and
// renderer, so app's job is just opening the outer terminal, starting the
// log, spawning the first window, and tearing everything back down in
// the right order on exit.
package app

import (
	"fmt"
	"os"

	"github.com/TheLudd/simplex/internal/eventloop"
	"github.com/TheLudd/simplex/internal/logctx"
	"github.com/TheLudd/simplex/internal/outerterm"
)

// Options configures a run of simplex; all fields have zero-value
// defaults per spec.md §6 (compile-time configuration only, no config
// file).
type Options struct {
	// Shell overrides $SHELL for the first spawned window, if non-empty.
	Shell string
	// LogFile overrides the log destination logctx.Open would otherwise
	// pick, if non-empty.
	LogFile string
}

// Application is the top-level owned value the entrypoint constructs.
type Application struct {
	term *outerterm.Terminal
	loop *eventloop.Loop
	logf *os.File
}

// New opens the outer terminal, redirects logging to a file, and builds
// the event loop. It does not yet enter raw mode or spawn anything; call
// Run for that.
func New(opts Options) (*Application, error) {
	logf, err := logctx.Open(opts.LogFile)
	if err != nil {
		return nil, err
	}

	term, err := outerterm.Open()
	if err != nil {
		logf.Close()
		return nil, fmt.Errorf("app: open terminal: %w", err)
	}

	loop, err := eventloop.New(term)
	if err != nil {
		term.Close()
		logf.Close()
		return nil, fmt.Errorf("app: init event loop: %w", err)
	}

	if opts.Shell != "" {
		os.Setenv("SHELL", opts.Shell)
	}

	return &Application{term: term, loop: loop, logf: logf}, nil
}

// Run enters raw mode, spawns the first window, and drives the event
// loop until the user quits or every goroutine reports the terminal is
// gone. It always restores the outer terminal before returning, even on
// error, so a fatal init failure never leaves the caller's shell in raw
// mode (spec.md §6 "exit codes").
func (a *Application) Run() error {
	if err := a.term.EnterRaw(); err != nil {
		return fmt.Errorf("app: enter raw mode: %w", err)
	}
	defer a.term.Restore()
	defer a.term.Close()
	defer a.logf.Close()

	a.loop.SpawnInitial()
	return a.loop.Run()
}
