package system

import "errors"

// Sentinel errors for System construction and lookup.
var (
	ErrEmptyName           = errors.New("system: empty name")
	ErrDuplicateProcess    = errors.New("system: duplicate process name")
	ErrDuplicateEvent      = errors.New("system: duplicate event name")
	ErrDuplicateClock      = errors.New("system: duplicate clock name")
	ErrDuplicateIntVar     = errors.New("system: duplicate integer variable name")
	ErrDuplicateLocation   = errors.New("system: duplicate location name within process")
	ErrUnknownProcess      = errors.New("system: unknown process")
	ErrUnknownEvent        = errors.New("system: unknown event")
	ErrUnknownClock        = errors.New("system: unknown clock")
	ErrUnknownIntVar       = errors.New("system: unknown integer variable")
	ErrUnknownLocation     = errors.New("system: unknown location")
	ErrNoInitialLocation   = errors.New("system: process has no initial location")
	ErrInvalidIntVarRange  = errors.New("system: integer variable min exceeds max")
	ErrInvalidVarSize      = errors.New("system: variable or clock size must be >= 1")
	ErrWeakSyncHasGuard    = errors.New("system: weakly synchronized event has a guard")
	ErrSyncMissingProcess  = errors.New("system: synchronization references an unknown process")
	ErrSyncDuplicateProc   = errors.New("system: synchronization references the same process twice")
)
