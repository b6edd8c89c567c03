// Package roots computes and exposes the storage-class root table.
//
// The table maps symbolic storage classes (application, data, cache, ...)
// onto concrete native directories. It is computed once at process start,
// either from platform queries (DetectTable) or from explicit paths
// (NewTable) for deterministic testing, and is read-only thereafter.
package roots

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marmos91/filebridge/pkg/entry"
)

// Class is a symbolic storage-class identifier.
type Class string

const (
	ClassApplication  Class = "application"
	ClassData         Class = "data"
	ClassExternalData Class = "externalData"
	ClassCache        Class = "cache"
	ClassTemp         Class = "temp"
	ClassDocuments    Class = "documents"
)

// Classes lists all storage classes in table order.
var Classes = []Class{
	ClassApplication,
	ClassData,
	ClassExternalData,
	ClassCache,
	ClassTemp,
	ClassDocuments,
}

// Known reports whether id names a storage class.
func Known(id string) bool {
	for _, c := range Classes {
		if string(c) == id {
			return true
		}
	}
	return false
}

// Root binds a storage class to an absolute native path.
// Path always carries a trailing separator.
type Root struct {
	Class Class  `json:"class"`
	Path  string `json:"path"`
}

// Table is the immutable storage-root table.
type Table struct {
	byClass map[Class]Root
}

// NewTable builds a table from explicit class-to-path bindings.
//
// Every class must be bound to an absolute path. Paths are normalized to
// carry a trailing separator. The directories do not have to exist; the
// table is a pure mapping.
func NewTable(paths map[Class]string) (*Table, error) {
	byClass := make(map[Class]Root, len(Classes))
	for _, class := range Classes {
		path, ok := paths[class]
		if !ok || path == "" {
			return nil, fmt.Errorf("roots: class %q has no path", class)
		}
		if !filepath.IsAbs(path) {
			return nil, fmt.Errorf("roots: class %q path %q is not absolute", class, path)
		}
		byClass[class] = Root{
			Class: class,
			Path:  entry.EnsureTrailingSeparator(filepath.Clean(path)),
		}
	}
	return &Table{byClass: byClass}, nil
}

// DetectTable computes the table from platform directory queries.
//
// Bindings follow the storage-class contract:
//   - application: the executable's install directory's parent
//   - data: the user-scoped persistent data directory
//   - externalData: same as data on platforms without external storage
//   - cache: the user-scoped cache directory
//   - temp: the process temporary directory
//   - documents: the user's Documents directory
//
// The appName scopes data and cache under a per-application subdirectory.
func DetectTable(appName string) (*Table, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("roots: resolve executable: %w", err)
	}
	application := filepath.Dir(filepath.Dir(exe))

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("roots: resolve user config dir: %w", err)
	}
	data := filepath.Join(configDir, appName)

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("roots: resolve user cache dir: %w", err)
	}
	cache := filepath.Join(cacheDir, appName)

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("roots: resolve home dir: %w", err)
	}

	return NewTable(map[Class]string{
		ClassApplication:  application,
		ClassData:         data,
		ClassExternalData: data,
		ClassCache:        cache,
		ClassTemp:         os.TempDir(),
		ClassDocuments:    filepath.Join(home, "Documents"),
	})
}

// Get returns the root for a class.
func (t *Table) Get(class Class) (Root, bool) {
	root, ok := t.byClass[class]
	return root, ok
}

// All returns every root in stable class order.
func (t *Table) All() []Root {
	all := make([]Root, 0, len(Classes))
	for _, class := range Classes {
		all = append(all, t.byClass[class])
	}
	return all
}
