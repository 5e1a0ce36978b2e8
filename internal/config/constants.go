// Package config holds the compile-time configuration of simplex: sizes,
// timings, and the keybinding table. There is no config file and nothing
// here is read from disk — spec.md calls for compile-time data only.
package config

import "time"

// =============================================================================
// Frame cadence
// =============================================================================

const (
	// FramePeriod is the minimum interval between committed frames.
	FramePeriod = 16 * time.Millisecond

	// PollTimerResolution is a poll-timeout value nothing reads: the event
	// loop's select wakes on a ticker of FramePeriod, which keeps the frame
	// cadence above under a silent terminal.
	PollTimerResolution = 16 * time.Millisecond
)

// =============================================================================
// Scrollback
// =============================================================================

const (
	// ScrollbackCapacity is the default number of lines retained per window
	// once they scroll off the primary screen.
	ScrollbackCapacity = 1000
)

// =============================================================================
// Fairness
// =============================================================================

const (
	// PTYReadBudget is the maximum number of bytes drained from a single
	// PTY's read side per event-loop iteration, so one noisy child cannot
	// starve the others or the outer terminal input.
	PTYReadBudget = 64 * 1024

	// ShutdownDrainTimeout bounds how long the loop waits, after sending
	// SIGHUP to every child, to collect final output before tearing down.
	ShutdownDrainTimeout = 500 * time.Millisecond
)

// =============================================================================
// Tab stops
// =============================================================================

const (
	// DefaultTabWidth is the distance between hardware tab stops absent an
	// explicit TBC-set position.
	DefaultTabWidth = 8
)

// =============================================================================
// Copy-mode counts
// =============================================================================

const (
	// MaxMotionCount caps a copy-mode numeric count prefix so a mistyped
	// digit run cannot turn a motion into a multi-minute scroll.
	MaxMotionCount = 10_000
)

// =============================================================================
// Layout
// =============================================================================

const (
	// MinMasterFraction and MaxMasterFraction bound the tiled layout's
	// master-column width as a fraction of the viewport.
	MinMasterFraction = 0.2
	MaxMasterFraction = 0.8

	// DefaultMasterFraction is the initial master-fraction of a fresh view.
	DefaultMasterFraction = 0.5

	// MasterFractionStep is how much h/l adjust the master fraction per
	// keypress in PREFIX mode.
	MasterFractionStep = 0.05
)

// =============================================================================
// Tags
// =============================================================================

const (
	// MinTag and MaxTag bound the tag namespace; tags are the integers
	// [MinTag, MaxTag].
	MinTag = 1
	MaxTag = 9

	// DefaultTag is the tag every fresh window and the initial view carry.
	DefaultTag = 1
)

// =============================================================================
// Environment fallbacks
// =============================================================================

const (
	// DefaultShell is used when $SHELL is unset or empty.
	DefaultShell = "/bin/sh"

	// DefaultTERM is set in a child's environment when $TERM is unset.
	DefaultTERM = "xterm-256color"

	// MinOuterWidth and MinOuterHeight are the smallest outer-terminal size
	// simplex will run in; anything smaller is a fatal init failure.
	MinOuterWidth  = 4
	MinOuterHeight = 4
)

// =============================================================================
// Prefix key
// =============================================================================

const (
	// PrefixByte is the default prefix key, Ctrl+B.
	PrefixByte byte = 0x02
)
