package local

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
	"github.com/zeebo/blake3"
)

// CopyTo copies the file at srcPath into dstDir under dstName, overwriting
// an existing destination. Any copy failure maps to INVALID_MODIFICATION.
// The returned ref is constructed by a getFile call on the destination.
func (e *Engine) CopyTo(ctx context.Context, srcPath, dstDir, dstName string) (entry.EntryRef, error) {
	if err := ctx.Err(); err != nil {
		return entry.EntryRef{}, cancelled(ctx, "copyTo", srcPath)
	}

	dst := entry.JoinChild(dstDir, dstName)
	if err := e.copyFile(srcPath, dst); err != nil {
		return entry.EntryRef{}, err
	}

	return e.GetFile(ctx, dstDir, dstName, entry.Options{})
}

// MoveTo moves the file at srcPath into dstDir under dstName.
//
// A native rename is attempted first; when source and destination sit on
// the same volume the move is atomic. Otherwise the move degrades to
// copy+remove, which is not atomic: a remove failure leaves both copies
// present and surfaces the remove error without deleting the destination.
// When a transfer journal is attached, the copy+remove path is recorded so
// an orphaned destination can be detected after a crash.
func (e *Engine) MoveTo(ctx context.Context, srcPath, dstDir, dstName string) (entry.EntryRef, error) {
	if err := ctx.Err(); err != nil {
		return entry.EntryRef{}, cancelled(ctx, "moveTo", srcPath)
	}

	dst := entry.JoinChild(dstDir, dstName)

	var journalID string
	if e.journal != nil {
		id, err := e.journal.Begin(ctx, srcPath, dst)
		if err != nil {
			logger.Warn("MOVE journal unavailable: src=%q error=%v", srcPath, err)
		} else {
			journalID = id
		}
	}

	if state, err := probe(srcPath); err == nil && state == stateFile {
		if err := os.Rename(srcPath, dst); err == nil {
			logger.Debug("MOVE renamed: src=%q dst=%q", srcPath, dst)
			e.commitJournal(ctx, journalID)
			return e.GetFile(ctx, dstDir, dstName, entry.Options{})
		}
	}

	if err := e.copyFile(srcPath, dst); err != nil {
		return entry.EntryRef{}, err
	}

	if err := os.Remove(srcPath); err != nil {
		logger.Warn("MOVE source removal failed: src=%q dst=%q error=%v", srcPath, dst, err)
		return entry.EntryRef{}, entry.WrapError(entry.ErrNoModificationAllowed, "cannot remove moved source", srcPath, err)
	}
	e.commitJournal(ctx, journalID)

	logger.Debug("MOVE copied: src=%q dst=%q", srcPath, dst)
	return e.GetFile(ctx, dstDir, dstName, entry.Options{})
}

func (e *Engine) commitJournal(ctx context.Context, id string) {
	if e.journal == nil || id == "" {
		return
	}
	if err := e.journal.Commit(ctx, id); err != nil {
		logger.Warn("MOVE journal commit failed: id=%s error=%v", id, err)
	}
}

// copyFile performs the native byte copy. Every failure, including a
// checksum mismatch under copy verification, maps to INVALID_MODIFICATION.
func (e *Engine) copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		logger.Debug("COPY open failed: src=%q error=%v", src, err)
		return entry.WrapError(entry.ErrInvalidModification, "cannot open copy source", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		logger.Debug("COPY create failed: dst=%q error=%v", dst, err)
		return entry.WrapError(entry.ErrInvalidModification, "cannot create copy destination", dst, err)
	}

	written, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Warn("COPY failed: src=%q dst=%q error=%v", src, dst, err)
		return entry.WrapError(entry.ErrInvalidModification, "copy failed", dst, err)
	}

	if e.verifyCopies {
		if err := verifyChecksums(src, dst); err != nil {
			os.Remove(dst)
			return err
		}
	}

	logger.Debug("COPY: src=%q dst=%q size=%s", src, dst, humanize.IBytes(uint64(written)))
	return nil
}

// verifyChecksums compares blake3 digests of the two files.
func verifyChecksums(src, dst string) error {
	srcSum, err := checksumFile(src)
	if err != nil {
		return entry.WrapError(entry.ErrInvalidModification, "cannot checksum copy source", src, err)
	}
	dstSum, err := checksumFile(dst)
	if err != nil {
		return entry.WrapError(entry.ErrInvalidModification, "cannot checksum copy destination", dst, err)
	}
	if !bytes.Equal(srcSum, dstSum) {
		logger.Error("COPY verification failed: src=%q dst=%q", src, dst)
		return entry.NewError(entry.ErrInvalidModification, "copy verification mismatch", dst)
	}
	return nil
}

func checksumFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
