package local

import (
	"context"
	"os"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
)

// lookupKey is the full decision input for getFile/getDirectory: the
// caller's flags plus the probed target state.
type lookupKey struct {
	create    bool
	exclusive bool
	state     targetState
}

// lookupAction is the outcome an entry of the decision table selects.
type lookupAction int

const (
	// actFail rejects the operation with the decision's error code
	actFail lookupAction = iota

	// actCreate creates the missing target (file create or mkdir)
	actCreate

	// actRecreate re-creates an existing target of the requested kind
	// (zero-length truncate for files, a no-op accept for directories)
	actRecreate

	// actReturnExisting returns the existing target untouched
	actReturnExisting
)

// lookupDecision pairs an action with the failure code used by actFail.
type lookupDecision struct {
	action lookupAction
	code   entry.ErrorCode
}

// fileDecisions enumerates every {create, exclusive, state} combination for
// getFile. Keeping the table explicit makes each combination testable
// instead of implicit in branch order.
var fileDecisions = map[lookupKey]lookupDecision{
	{true, true, stateMissing}:   {action: actCreate},
	{true, true, stateFile}:      {action: actFail, code: entry.ErrPathExists},
	{true, true, stateDir}:       {action: actFail, code: entry.ErrPathExists},
	{true, false, stateMissing}:  {action: actCreate},
	{true, false, stateFile}:     {action: actRecreate},
	{true, false, stateDir}:      {action: actFail, code: entry.ErrInvalidModification},
	{false, true, stateMissing}:  {action: actFail, code: entry.ErrNotFound},
	{false, true, stateFile}:     {action: actReturnExisting},
	{false, true, stateDir}:      {action: actFail, code: entry.ErrTypeMismatch},
	{false, false, stateMissing}: {action: actFail, code: entry.ErrNotFound},
	{false, false, stateFile}:    {action: actReturnExisting},
	{false, false, stateDir}:     {action: actFail, code: entry.ErrTypeMismatch},
}

// directoryDecisions is the getFile table with the file/directory roles
// swapped: creation over an existing entry of the other kind is blocked the
// same way, and TYPE_MISMATCH guards non-create opens of the wrong kind.
var directoryDecisions = map[lookupKey]lookupDecision{
	{true, true, stateMissing}:   {action: actCreate},
	{true, true, stateDir}:       {action: actFail, code: entry.ErrPathExists},
	{true, true, stateFile}:      {action: actFail, code: entry.ErrPathExists},
	{true, false, stateMissing}:  {action: actCreate},
	{true, false, stateDir}:      {action: actRecreate},
	{true, false, stateFile}:     {action: actFail, code: entry.ErrInvalidModification},
	{false, true, stateMissing}:  {action: actFail, code: entry.ErrNotFound},
	{false, true, stateDir}:      {action: actReturnExisting},
	{false, true, stateFile}:     {action: actFail, code: entry.ErrTypeMismatch},
	{false, false, stateMissing}: {action: actFail, code: entry.ErrNotFound},
	{false, false, stateDir}:     {action: actReturnExisting},
	{false, false, stateFile}:    {action: actFail, code: entry.ErrTypeMismatch},
}

// GetFile opens or creates the file name under parentPath per opts.
//
// The legality of every flag/state combination is decided by fileDecisions;
// see that table for the full contract. A probe failure that is not
// "missing" fails INVALID_STATE.
func (e *Engine) GetFile(ctx context.Context, parentPath, name string, opts entry.Options) (entry.EntryRef, error) {
	if err := ctx.Err(); err != nil {
		return entry.EntryRef{}, cancelled(ctx, "getFile", name)
	}

	target := entry.JoinChild(parentPath, name)

	state, err := probe(target)
	if err != nil {
		logger.Warn("GETFILE probe failed: path=%q error=%v", target, err)
		return entry.EntryRef{}, entry.WrapError(entry.ErrInvalidState, "cannot probe entry", target, err)
	}

	decision := fileDecisions[lookupKey{opts.Create, opts.Exclusive, state}]
	switch decision.action {
	case actCreate, actRecreate:
		if err := createFile(target, decision.action == actCreate); err != nil {
			return entry.EntryRef{}, err
		}
		logger.Debug("GETFILE created: path=%q exclusive=%v", target, opts.Exclusive)
		return entry.NewFileRef(target), nil

	case actReturnExisting:
		return entry.NewFileRef(target), nil

	default:
		logger.Debug("GETFILE rejected: path=%q create=%v exclusive=%v state=%d code=%s",
			target, opts.Create, opts.Exclusive, state, decision.code)
		return entry.EntryRef{}, entry.NewError(decision.code, "getFile rejected", target)
	}
}

// GetDirectory opens or creates the directory name under parentPath per
// opts, using directoryDecisions as the legality table.
func (e *Engine) GetDirectory(ctx context.Context, parentPath, name string, opts entry.Options) (entry.EntryRef, error) {
	if err := ctx.Err(); err != nil {
		return entry.EntryRef{}, cancelled(ctx, "getDirectory", name)
	}

	target := entry.JoinChild(parentPath, name)

	state, err := probe(target)
	if err != nil {
		logger.Warn("GETDIR probe failed: path=%q error=%v", target, err)
		return entry.EntryRef{}, entry.WrapError(entry.ErrInvalidState, "cannot probe entry", target, err)
	}

	decision := directoryDecisions[lookupKey{opts.Create, opts.Exclusive, state}]
	switch decision.action {
	case actCreate:
		if err := os.Mkdir(target, 0755); err != nil {
			// Losing the probe/mkdir race surfaces as an exclusive-create
			// conflict rather than a generic failure.
			if os.IsExist(err) {
				return entry.EntryRef{}, entry.WrapError(entry.ErrPathExists, "directory appeared concurrently", target, err)
			}
			logger.Warn("GETDIR mkdir failed: path=%q error=%v", target, err)
			return entry.EntryRef{}, entry.WrapError(entry.ErrInvalidModification, "cannot create directory", target, err)
		}
		logger.Debug("GETDIR created: path=%q exclusive=%v", target, opts.Exclusive)
		return entry.NewDirectoryRef(target), nil

	case actRecreate, actReturnExisting:
		return entry.NewDirectoryRef(target), nil

	default:
		logger.Debug("GETDIR rejected: path=%q create=%v exclusive=%v state=%d code=%s",
			target, opts.Create, opts.Exclusive, state, decision.code)
		return entry.EntryRef{}, entry.NewError(decision.code, "getDirectory rejected", target)
	}
}

// createFile creates a zero-length file. When fresh is true the create is
// exclusive (the decision said the path was missing); otherwise the
// existing file is truncate-recreated.
func createFile(path string, fresh bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if fresh {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return entry.WrapError(entry.ErrPathExists, "file appeared concurrently", path, err)
		}
		logger.Warn("CREATE failed: path=%q error=%v", path, err)
		return entry.WrapError(entry.ErrInvalidModification, "cannot create file", path, err)
	}
	if err := f.Close(); err != nil {
		return entry.WrapError(entry.ErrInvalidModification, "cannot finalize file", path, err)
	}
	return nil
}
