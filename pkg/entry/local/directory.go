package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
)

// ReadEntries enumerates the children of dirPath in native order.
//
// Each child's path is built by concatenating the parent path and the child
// name; directory children carry the trailing separator. One native read;
// any failure (typically "not found" or "not a directory") maps to
// NOT_FOUND.
func (e *Engine) ReadEntries(ctx context.Context, dirPath string) (entry.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(ctx, "readEntries", dirPath)
	}

	children, err := os.ReadDir(dirPath)
	if err != nil {
		logger.Debug("READENTRIES failed: path=%q error=%v", dirPath, err)
		return nil, entry.WrapError(entry.ErrNotFound, "cannot enumerate directory", dirPath, err)
	}

	listing := make(entry.Listing, 0, len(children))
	for _, child := range children {
		fullPath := entry.JoinChild(dirPath, child.Name())
		if child.IsDir() {
			fullPath = entry.EnsureTrailingSeparator(fullPath)
		}
		listing = append(listing, entry.DirectoryEntry{
			IsDirectory: child.IsDir(),
			IsFile:      !child.IsDir(),
			Name:        child.Name(),
			FullPath:    fullPath,
			RootLabel:   "temporary",
			NativeURL:   "file://" + fullPath,
		})
	}

	logger.Debug("READENTRIES: path=%q entries=%d", dirPath, len(listing))
	return listing, nil
}

// GetParent resolves the parent directory of childPath.
//
// The parent path and its base name are derived, then the open is delegated
// to GetDirectory with create=false, so a vanished parent surfaces as
// NOT_FOUND. The parent of a filesystem root is the root itself.
func (e *Engine) GetParent(ctx context.Context, childPath string) (entry.EntryRef, error) {
	if err := ctx.Err(); err != nil {
		return entry.EntryRef{}, cancelled(ctx, "getParent", childPath)
	}

	child := entry.TrimTrailingSeparator(childPath)
	parent := filepath.Dir(child)
	if parent == child {
		return entry.NewDirectoryRef(parent), nil
	}
	if grandparent := filepath.Dir(parent); grandparent == parent {
		return entry.NewDirectoryRef(parent), nil
	}

	return e.GetDirectory(ctx, filepath.Dir(parent), filepath.Base(parent), entry.Options{})
}
