// Package entry defines the value records and error taxonomy shared by the
// URI resolver, the entry operations engine and the bridge boundary.
//
// All records are immutable once constructed. An EntryRef has no identity
// beyond its path: two refs with the same FullPath are interchangeable.
package entry

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"
)

// Separator is the native path separator as a string.
const Separator = string(filepath.Separator)

// Kind discriminates files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// EntryRef is a resolved handle identifying a file or directory.
//
// FullPath is absolute. Directory paths always carry a trailing separator,
// file paths never do. Downstream concatenation (dir path + child name)
// relies on this invariant.
type EntryRef struct {
	Name     string
	FullPath string
	Kind     Kind
}

// NewFileRef builds an EntryRef for a regular file.
func NewFileRef(path string) EntryRef {
	path = TrimTrailingSeparator(path)
	return EntryRef{
		Name:     filepath.Base(path),
		FullPath: path,
		Kind:     KindFile,
	}
}

// NewDirectoryRef builds an EntryRef for a directory, enforcing the
// trailing-separator invariant.
func NewDirectoryRef(path string) EntryRef {
	trimmed := TrimTrailingSeparator(path)
	name := filepath.Base(trimmed)
	return EntryRef{
		Name:     name,
		FullPath: EnsureTrailingSeparator(trimmed),
		Kind:     KindDirectory,
	}
}

// IsDirectory reports whether the ref points at a directory.
func (r EntryRef) IsDirectory() bool {
	return r.Kind == KindDirectory
}

// NativeURL returns the file:// form of the ref's path.
func (r EntryRef) NativeURL() string {
	return "file://" + r.FullPath
}

// MarshalJSON serializes the ref in the boundary shape expected by hosts.
func (r EntryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		IsFile      bool   `json:"isFile"`
		IsDirectory bool   `json:"isDirectory"`
		Name        string `json:"name"`
		FullPath    string `json:"fullPath"`
		NativeURL   string `json:"nativeURL"`
	}{
		IsFile:      !r.IsDirectory(),
		IsDirectory: r.IsDirectory(),
		Name:        r.Name,
		FullPath:    r.FullPath,
		NativeURL:   r.NativeURL(),
	})
}

// FileMetadata is the result of a full metadata query.
//
// It is never cached: every query re-derives it from a fresh stat.
// MIMEType is always empty; the adapter does not guess content types.
type FileMetadata struct {
	Name         string    `json:"name"`
	FullPath     string    `json:"fullPath"`
	MIMEType     string    `json:"type"`
	LastModified time.Time `json:"lastModifiedDate"`
	Size         int64     `json:"size"`
}

// Metadata is the result of the reduced metadata query.
type Metadata struct {
	ModificationTime time.Time `json:"modificationTime"`
	Size             int64     `json:"size"`
}

// Options controls create-vs-open semantics for getFile/getDirectory.
type Options struct {
	Create    bool `mapstructure:"create" json:"create"`
	Exclusive bool `mapstructure:"exclusive" json:"exclusive"`
}

// DirectoryEntry is one child in a directory listing.
//
// RootLabel is always the literal "temporary" for host compatibility.
type DirectoryEntry struct {
	IsDirectory bool   `json:"isDirectory"`
	IsFile      bool   `json:"isFile"`
	Name        string `json:"name"`
	FullPath    string `json:"fullPath"`
	RootLabel   string `json:"filesystemName"`
	NativeURL   string `json:"nativeURL"`
}

// Listing is an ordered directory listing. The order is the native
// enumeration order; it is not guaranteed sorted.
type Listing []DirectoryEntry

// EnsureTrailingSeparator appends the native separator if absent.
func EnsureTrailingSeparator(path string) string {
	if strings.HasSuffix(path, Separator) {
		return path
	}
	return path + Separator
}

// TrimTrailingSeparator strips trailing separators, preserving the root.
func TrimTrailingSeparator(path string) string {
	if path == Separator {
		return path
	}
	trimmed := strings.TrimRight(path, Separator)
	if trimmed == "" {
		return Separator
	}
	return trimmed
}

// JoinChild concatenates a directory path and a child base name, relying on
// the trailing-separator invariant.
func JoinChild(dir, name string) string {
	return EnsureTrailingSeparator(dir) + name
}
