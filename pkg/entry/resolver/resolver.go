// Package resolver maps symbolic filesystem URIs onto native paths.
//
// Two input forms are accepted: a bare native absolute path, or a symbolic
// URI of the form scheme://host/<class>/<rest> where <class> selects a
// storage root. Malformed authorities and unknown class tokens fail with
// ENCODING before the filesystem is touched.
package resolver

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
	"github.com/marmos91/filebridge/pkg/entry/roots"
)

// ExpectedHost is the fixed authority every symbolic URI must carry.
const ExpectedHost = "localhost"

// classRoots maps URI class tokens onto storage-root classes.
var classRoots = map[string]roots.Class{
	"application": roots.ClassApplication,
	"persistent":  roots.ClassData,
	"temporary":   roots.ClassTemp,
}

// Resolver resolves URIs against a fixed storage-root table.
type Resolver struct {
	table *roots.Table
}

// New builds a resolver over the given root table.
func New(table *roots.Table) *Resolver {
	return &Resolver{table: table}
}

// Roots exposes the storage-root table read-only.
func (r *Resolver) Roots() *roots.Table {
	return r.table
}

// Resolve maps a URI or bare path to an EntryRef.
//
// After resolution the path is probed: a missing path fails NOT_FOUND, an
// existing path yields a ref tagged file or directory per the probe result.
func (r *Resolver) Resolve(ctx context.Context, uri string) (entry.EntryRef, error) {
	if err := ctx.Err(); err != nil {
		return entry.EntryRef{}, entry.WrapError(entry.ErrAbort, "resolve cancelled", uri, err)
	}

	decoded := decodeOnce(uri)

	path, err := r.toNativePath(decoded)
	if err != nil {
		return entry.EntryRef{}, err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		logger.Debug("RESOLVE failed: uri=%q path=%q error=%v", uri, path, statErr)
		return entry.EntryRef{}, entry.WrapError(entry.ErrNotFound, "entry not found", path, statErr)
	}

	if info.IsDir() {
		return entry.NewDirectoryRef(path), nil
	}
	return entry.NewFileRef(path), nil
}

// toNativePath translates a decoded URI into an absolute native path
// without touching the filesystem.
func (r *Resolver) toNativePath(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		if !strings.HasPrefix(uri, entry.Separator) {
			return "", entry.NewError(entry.ErrEncoding, "path is not absolute", uri)
		}
		return uri, nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", entry.WrapError(entry.ErrEncoding, "malformed uri", uri, err)
	}

	if parsed.Host != ExpectedHost {
		return "", entry.NewError(entry.ErrEncoding, "unexpected uri authority", parsed.Host)
	}

	rest := strings.TrimPrefix(parsed.Path, "/")
	class, tail, _ := strings.Cut(rest, "/")

	rootClass, ok := classRoots[class]
	if !ok {
		return "", entry.NewError(entry.ErrEncoding, "unknown storage class", class)
	}

	root, ok := r.table.Get(rootClass)
	if !ok {
		return "", entry.NewError(entry.ErrEncoding, "storage class has no root", class)
	}

	return root.Path + tail, nil
}

// decodeOnce percent-decodes the input a single time when it plausibly
// contains escapes. The heuristic mirrors the host bridge: a literal "%20"
// or a "%5x" sequence triggers exactly one decode pass; anything that fails
// to decode is left as-is.
func decodeOnce(uri string) string {
	if !strings.Contains(uri, "%20") && !strings.Contains(uri, "%5") {
		return uri
	}
	decoded, err := url.PathUnescape(uri)
	if err != nil {
		return uri
	}
	return decoded
}
