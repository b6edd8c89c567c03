// Package local implements the entry operations engine over the native
// filesystem.
//
// Every operation follows the same shape: normalize inputs, probe the
// current filesystem state, decide legality against an explicit decision
// table, perform the native call(s), and construct either a result record
// or a typed entry.Error. Operations are independent and hold no shared
// mutable state; callers are responsible for serializing logically
// dependent operations on the same path.
package local

import (
	"context"
	"os"

	"github.com/marmos91/filebridge/pkg/entry"
)

// TransferJournal records copy+remove moves so orphaned destinations can be
// detected after a crash. A nil journal disables recording.
type TransferJournal interface {
	// Begin records an intent to move src to dst and returns a record id.
	Begin(ctx context.Context, src, dst string) (string, error)

	// Commit clears the record once the source has been removed.
	Commit(ctx context.Context, id string) error
}

// Engine performs entry operations against the native filesystem.
//
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	verifyCopies bool
	journal      TransferJournal
}

// Option configures an Engine.
type Option func(*Engine)

// WithCopyVerification enables checksum verification of copied content.
func WithCopyVerification() Option {
	return func(e *Engine) {
		e.verifyCopies = true
	}
}

// WithJournal attaches a transfer journal to copy+remove moves.
func WithJournal(j TransferJournal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// NewEngine builds an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// targetState is the observed filesystem state of an operation target.
type targetState int

const (
	stateMissing targetState = iota
	stateFile
	stateDir
)

// probe performs the existence/type check preceding every decision.
//
// A stat failure that is not "missing" is reported as a distinct error so
// callers can distinguish "path doesn't exist" from "can't even stat it".
func probe(path string) (targetState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stateMissing, nil
		}
		return stateMissing, err
	}
	if info.IsDir() {
		return stateDir, nil
	}
	return stateFile, nil
}

// cancelled maps a context error to the typed ABORT failure.
func cancelled(ctx context.Context, op, path string) *entry.Error {
	return entry.WrapError(entry.ErrAbort, op+" cancelled", path, ctx.Err())
}
