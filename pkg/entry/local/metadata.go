package local

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
)

// GetMetadata returns the modification time and size of path from a fresh
// stat. No distinction is made between "not found" and other stat failures.
func (e *Engine) GetMetadata(ctx context.Context, path string) (entry.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return entry.Metadata{}, cancelled(ctx, "getMetadata", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Debug("GETMETADATA failed: path=%q error=%v", path, err)
		return entry.Metadata{}, entry.WrapError(entry.ErrNotFound, "cannot stat entry", path, err)
	}

	return entry.Metadata{
		ModificationTime: info.ModTime(),
		Size:             info.Size(),
	}, nil
}

// GetFileMetadata returns the full metadata record for path.
//
// The record is never cached; every call re-derives it from a fresh stat.
// The MIME type is always left empty.
func (e *Engine) GetFileMetadata(ctx context.Context, path string) (entry.FileMetadata, error) {
	if err := ctx.Err(); err != nil {
		return entry.FileMetadata{}, cancelled(ctx, "getFileMetadata", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Debug("GETFILEMETADATA failed: path=%q error=%v", path, err)
		return entry.FileMetadata{}, entry.WrapError(entry.ErrNotFound, "cannot stat entry", path, err)
	}

	fullPath := entry.TrimTrailingSeparator(path)
	if info.IsDir() {
		fullPath = entry.EnsureTrailingSeparator(fullPath)
	}

	return entry.FileMetadata{
		Name:         filepath.Base(entry.TrimTrailingSeparator(path)),
		FullPath:     fullPath,
		MIMEType:     "",
		LastModified: info.ModTime(),
		Size:         info.Size(),
	}, nil
}

// SetMetadata sets the modification time of path.
//
// The native call offers no independent access-time control; both times are
// set to the supplied value. Failure maps to NOT_FOUND.
func (e *Engine) SetMetadata(ctx context.Context, path string, modificationTime time.Time) error {
	if err := ctx.Err(); err != nil {
		return cancelled(ctx, "setMetadata", path)
	}

	if err := os.Chtimes(path, modificationTime, modificationTime); err != nil {
		logger.Debug("SETMETADATA failed: path=%q error=%v", path, err)
		return entry.WrapError(entry.ErrNotFound, "cannot set entry times", path, err)
	}
	return nil
}
