package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcxross/sui/pkg/errors"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	pkg := "[package]\nname = \"p\"\n"
	writeManifest(t, filepath.Join(root, "b"), pkg)
	writeManifest(t, filepath.Join(root, "a"), pkg)
	writeManifest(t, filepath.Join(root, "a", "nested"), pkg)
	for _, skipped := range []string{".git", "target", "build", "node_modules"} {
		writeManifest(t, filepath.Join(root, "a", skipped, "dep"), pkg)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("hi"), 0o644))

	roots, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "nested"),
		filepath.Join(root, "b"),
	}, roots)
}

func TestDiscoverOrdersByComponent(t *testing.T) {
	root := t.TempDir()
	pkg := "[package]\nname = \"p\"\n"
	for _, dir := range []string{"a-b", "a.x", "a/c", "a"} {
		writeManifest(t, filepath.Join(root, dir), pkg)
	}

	roots, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "c"),
		filepath.Join(root, "a-b"),
		filepath.Join(root, "a.x"),
	}, roots)
}

func TestComparePaths(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"/w/a", "/w/a", 0},
		{"/w/a", "/w/a/c", -1},
		{"/w/a/c", "/w/a-b", -1},
		{"/w/a.x", "/w/a-b", 1},
		{"/w/b", "/w/a/z", 1},
	}
	for _, tt := range tests {
		if got := comparePaths(tt.a, tt.b); got != tt.want {
			t.Errorf("comparePaths(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDiscoverRootPackage(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"p\"\n")

	roots, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, roots)
}

func TestDiscoverManifestFile(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"p\"\n")

	roots, err := Discover(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Equal(t, []string{root}, roots)
}

func TestDiscoverNothing(t *testing.T) {
	root := t.TempDir()
	other := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	_, err := Discover(root)
	assert.True(t, errors.Is(err, errors.ErrCodeManifestNotFound), "got %v", err)

	_, err = Discover(other)
	assert.True(t, errors.Is(err, errors.ErrCodeManifestNotFound), "got %v", err)

	_, err = Discover(filepath.Join(root, "missing"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath), "got %v", err)
}

func TestSkipDir(t *testing.T) {
	assert.True(t, SkipDir(".git"))
	assert.True(t, SkipDir("build"))
	assert.False(t, SkipDir("sources"))
}
