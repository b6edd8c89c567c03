package entry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileRef(t *testing.T) {
	t.Run("DerivesNameFromPath", func(t *testing.T) {
		ref := NewFileRef("/data/docs/report.txt")

		assert.Equal(t, "report.txt", ref.Name)
		assert.Equal(t, "/data/docs/report.txt", ref.FullPath)
		assert.False(t, ref.IsDirectory())
	})

	t.Run("StripsAccidentalTrailingSeparator", func(t *testing.T) {
		ref := NewFileRef("/data/docs/report.txt/")

		assert.Equal(t, "/data/docs/report.txt", ref.FullPath)
	})
}

func TestNewDirectoryRef(t *testing.T) {
	t.Run("AppendsTrailingSeparator", func(t *testing.T) {
		ref := NewDirectoryRef("/data/docs")

		assert.Equal(t, "docs", ref.Name)
		assert.Equal(t, "/data/docs/", ref.FullPath)
		assert.True(t, ref.IsDirectory())
	})

	t.Run("IsIdempotentOnSeparator", func(t *testing.T) {
		ref := NewDirectoryRef("/data/docs/")

		assert.Equal(t, "/data/docs/", ref.FullPath)
	})

	t.Run("HandlesRoot", func(t *testing.T) {
		ref := NewDirectoryRef("/")

		assert.Equal(t, "/", ref.FullPath)
		assert.True(t, ref.IsDirectory())
	})
}

func TestEntryRefNativeURL(t *testing.T) {
	assert.Equal(t, "file:///data/docs/report.txt", NewFileRef("/data/docs/report.txt").NativeURL())
	assert.Equal(t, "file:///data/docs/", NewDirectoryRef("/data/docs").NativeURL())
}

func TestEntryRefMarshalJSON(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		payload, err := json.Marshal(NewFileRef("/tmp/a.txt"))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(payload, &decoded))

		assert.Equal(t, true, decoded["isFile"])
		assert.Equal(t, false, decoded["isDirectory"])
		assert.Equal(t, "a.txt", decoded["name"])
		assert.Equal(t, "/tmp/a.txt", decoded["fullPath"])
		assert.Equal(t, "file:///tmp/a.txt", decoded["nativeURL"])
	})

	t.Run("Directory", func(t *testing.T) {
		payload, err := json.Marshal(NewDirectoryRef("/tmp/sub"))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(payload, &decoded))

		assert.Equal(t, false, decoded["isFile"])
		assert.Equal(t, true, decoded["isDirectory"])
		assert.Equal(t, "/tmp/sub/", decoded["fullPath"])
	})
}

func TestSeparatorHelpers(t *testing.T) {
	t.Run("EnsureTrailingSeparator", func(t *testing.T) {
		assert.Equal(t, "/a/b/", EnsureTrailingSeparator("/a/b"))
		assert.Equal(t, "/a/b/", EnsureTrailingSeparator("/a/b/"))
		assert.Equal(t, "/", EnsureTrailingSeparator("/"))
	})

	t.Run("TrimTrailingSeparator", func(t *testing.T) {
		assert.Equal(t, "/a/b", TrimTrailingSeparator("/a/b/"))
		assert.Equal(t, "/a/b", TrimTrailingSeparator("/a/b"))
		assert.Equal(t, "/", TrimTrailingSeparator("/"))
		assert.Equal(t, "/", TrimTrailingSeparator("///"))
	})

	t.Run("JoinChild", func(t *testing.T) {
		assert.Equal(t, "/a/b/c.txt", JoinChild("/a/b/", "c.txt"))
		assert.Equal(t, "/a/b/c.txt", JoinChild("/a/b", "c.txt"))
	})
}
