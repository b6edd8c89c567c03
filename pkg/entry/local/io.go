package local

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
	"golang.org/x/text/encoding/htmlindex"
)

// Write writes data at the given absolute position.
//
// The position is authoritative: it may overwrite existing bytes or extend
// the file. An empty payload fails INVALID_MODIFICATION synchronously,
// before any handle is opened. The handle is closed on every exit path.
func (e *Engine) Write(ctx context.Context, path string, data []byte, position int64) (int64, error) {
	if len(data) == 0 {
		return 0, entry.NewError(entry.ErrInvalidModification, "refusing zero-length write", path)
	}
	if err := ctx.Err(); err != nil {
		return 0, cancelled(ctx, "write", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		logger.Debug("WRITE open failed: path=%q error=%v", path, err)
		return 0, entry.WrapError(entry.ErrNotFound, "cannot open for writing", path, err)
	}
	defer f.Close()

	n, err := f.WriteAt(data, position)
	if err != nil {
		logger.Warn("WRITE failed: path=%q pos=%d error=%v", path, position, err)
		return int64(n), entry.WrapError(entry.ErrNoModificationAllowed, "write failed", path, err)
	}

	logger.Debug("WRITE: path=%q pos=%d size=%s", path, position, humanize.IBytes(uint64(n)))
	return int64(n), nil
}

// Truncate resizes path to size bytes and returns the size.
// Failure maps to INVALID_STATE.
func (e *Engine) Truncate(ctx context.Context, path string, size int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, cancelled(ctx, "truncate", path)
	}

	if err := os.Truncate(path, size); err != nil {
		logger.Debug("TRUNCATE failed: path=%q size=%d error=%v", path, size, err)
		return 0, entry.WrapError(entry.ErrInvalidState, "cannot truncate", path, err)
	}
	return size, nil
}

// readRange reads exactly [start, end) via one positioned read.
//
// Open failure maps to NOT_FOUND, read failure (including a range that
// does not fit the file) to NOT_READABLE. The handle is closed regardless
// of outcome. The range is not validated beyond what the native read
// itself rejects.
func (e *Engine) readRange(ctx context.Context, path string, start, end int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(ctx, "read", path)
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Debug("READ open failed: path=%q error=%v", path, err)
		return nil, entry.WrapError(entry.ErrNotFound, "cannot open for reading", path, err)
	}
	defer f.Close()

	length := end - start
	if length < 0 {
		return nil, entry.NewError(entry.ErrNotReadable, "range read failed", path)
	}

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, start)
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("READ failed: path=%q range=[%d,%d) error=%v", path, start, end, err)
		return nil, entry.WrapError(entry.ErrNotReadable, "range read failed", path, err)
	}
	if int64(n) < length {
		return nil, entry.NewError(entry.ErrNotReadable, "range exceeds entry size", path)
	}

	return buf, nil
}

// ReadAsText reads [start, end) and decodes it per the named encoding.
// An empty encoding means UTF-8; unknown encoding labels fail ENCODING.
func (e *Engine) ReadAsText(ctx context.Context, path, encoding string, start, end int64) (string, error) {
	data, err := e.readRange(ctx, path, start, end)
	if err != nil {
		return "", err
	}

	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return string(data), nil
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return "", entry.WrapError(entry.ErrEncoding, "unknown text encoding", encoding, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", entry.WrapError(entry.ErrEncoding, "cannot decode text", path, err)
	}
	return string(decoded), nil
}

// ReadAsDataURL reads [start, end) and returns it as a base64 data URL.
// No MIME type is ever populated.
func (e *Engine) ReadAsDataURL(ctx context.Context, path string, start, end int64) (string, error) {
	data, err := e.readRange(ctx, path, start, end)
	if err != nil {
		return "", err
	}
	return "data:;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ReadAsBinaryString reads [start, end) as a binary string: one character
// per byte, each in the range U+0000 to U+00FF.
func (e *Engine) ReadAsBinaryString(ctx context.Context, path string, start, end int64) (string, error) {
	data, err := e.readRange(ctx, path, start, end)
	if err != nil {
		return "", err
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// ReadAsArrayBuffer reads [start, end) and returns the raw bytes unchanged.
func (e *Engine) ReadAsArrayBuffer(ctx context.Context, path string, start, end int64) ([]byte, error) {
	return e.readRange(ctx, path, start, end)
}
