package local

import (
	"context"
	"os"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
)

// Remove deletes a file or an empty directory.
//
// The target is probed first; a missing target fails NOT_FOUND. Directory
// removal is non-recursive, so a populated directory fails the native call
// and surfaces NO_MODIFICATION_ALLOWED, as does every other native failure.
func (e *Engine) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return cancelled(ctx, "remove", path)
	}

	state, err := probe(path)
	if err != nil {
		return entry.WrapError(entry.ErrNoModificationAllowed, "cannot probe entry", path, err)
	}
	if state == stateMissing {
		return entry.NewError(entry.ErrNotFound, "entry not found", path)
	}

	if err := os.Remove(entry.TrimTrailingSeparator(path)); err != nil {
		logger.Debug("REMOVE failed: path=%q error=%v", path, err)
		return entry.WrapError(entry.ErrNoModificationAllowed, "cannot remove entry", path, err)
	}

	logger.Debug("REMOVE: path=%q", path)
	return nil
}

// RemoveRecursively deletes a directory tree (or a single file) with
// recursive, force semantics: contents vanishing mid-removal is tolerated.
// A missing target still fails NOT_FOUND; native failures map to
// NO_MODIFICATION_ALLOWED.
func (e *Engine) RemoveRecursively(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return cancelled(ctx, "removeRecursively", path)
	}

	state, err := probe(path)
	if err != nil {
		return entry.WrapError(entry.ErrNoModificationAllowed, "cannot probe entry", path, err)
	}
	if state == stateMissing {
		return entry.NewError(entry.ErrNotFound, "entry not found", path)
	}

	if err := os.RemoveAll(entry.TrimTrailingSeparator(path)); err != nil {
		logger.Debug("REMOVEALL failed: path=%q error=%v", path, err)
		return entry.WrapError(entry.ErrNoModificationAllowed, "cannot remove tree", path, err)
	}

	logger.Debug("REMOVEALL: path=%q", path)
	return nil
}
