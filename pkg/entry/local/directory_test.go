package local

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/filebridge/pkg/entry"
)

func TestReadEntries(t *testing.T) {
	engine := NewEngine()
	ctx := context.Background()

	t.Run("ListsFilesAndDirectories", func(t *testing.T) {
		dir := t.TempDir()
		seedFile(t, dir, "a.txt", "x")
		seedDir(t, dir, "sub")

		listing, err := engine.ReadEntries(ctx, dir)
		require.NoError(t, err)
		require.Len(t, listing, 2)

		byName := make(map[string]entry.DirectoryEntry, len(listing))
		for _, child := range listing {
			byName[child.Name] = child
		}

		file := byName["a.txt"]
		assert.True(t, file.IsFile)
		assert.False(t, file.IsDirectory)
		assert.Equal(t, filepath.Join(dir, "a.txt"), file.FullPath)
		assert.Equal(t, "file://"+file.FullPath, file.NativeURL)
		assert.Equal(t, "temporary", file.RootLabel)

		sub := byName["sub"]
		assert.True(t, sub.IsDirectory)
		assert.True(t, strings.HasSuffix(sub.FullPath, "/"), "directory child must carry the separator")
		assert.Equal(t, filepath.Join(dir, "sub")+"/", sub.FullPath)
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		listing, err := engine.ReadEntries(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, listing)
	})

	t.Run("AcceptsTrailingSeparator", func(t *testing.T) {
		dir := t.TempDir()
		seedFile(t, dir, "a.txt", "x")

		listing, err := engine.ReadEntries(ctx, dir+"/")
		require.NoError(t, err)
		require.Len(t, listing, 1)

		// No doubled separator from the concatenation
		assert.NotContains(t, listing[0].FullPath, "//")
	})

	t.Run("MissingDirectoryFailsNotFound", func(t *testing.T) {
		_, err := engine.ReadEntries(ctx, filepath.Join(t.TempDir(), "nope"))
		requireCode(t, err, entry.ErrNotFound)
	})

	t.Run("FileFailsNotFound", func(t *testing.T) {
		path := seedFile(t, t.TempDir(), "f.txt", "x")

		_, err := engine.ReadEntries(ctx, path)
		requireCode(t, err, entry.ErrNotFound)
	})
}

func TestGetParent(t *testing.T) {
	engine := NewEngine()
	ctx := context.Background()

	t.Run("OfFile", func(t *testing.T) {
		dir := t.TempDir()
		sub := seedDir(t, dir, "sub")
		path := seedFile(t, sub, "f.txt", "x")

		ref, err := engine.GetParent(ctx, path)
		require.NoError(t, err)

		assert.True(t, ref.IsDirectory())
		assert.Equal(t, sub+"/", ref.FullPath)
		assert.Equal(t, "sub", ref.Name)
	})

	t.Run("OfDirectoryWithTrailingSeparator", func(t *testing.T) {
		dir := t.TempDir()
		sub := seedDir(t, dir, "sub")
		inner := seedDir(t, sub, "inner")

		ref, err := engine.GetParent(ctx, inner+"/")
		require.NoError(t, err)

		assert.Equal(t, sub+"/", ref.FullPath)
	})

	t.Run("OfRootIsRoot", func(t *testing.T) {
		ref, err := engine.GetParent(ctx, "/")
		require.NoError(t, err)

		assert.Equal(t, "/", ref.FullPath)
		assert.True(t, ref.IsDirectory())
	})

	t.Run("VanishedParentFailsNotFound", func(t *testing.T) {
		_, err := engine.GetParent(ctx, filepath.Join(t.TempDir(), "gone", "deeper", "f.txt"))
		requireCode(t, err, entry.ErrNotFound)
	})
}
