package browse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialogRoot builds a directory tree for picker tests:
//
//	root/
//	  Projects/
//	  downloads/
//	  music/
//	  .hidden/
//	  file.txt
func dialogRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"Projects", "downloads", "music", ".hidden"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))
	return root
}

func TestDialogListsDirectoriesOnly(t *testing.T) {
	root := dialogRoot(t)
	d := newDestDialog("/src/path", root)

	// ".." first, then visible sub-directories sorted case-insensitively.
	// Files and dot-directories are excluded.
	assert.Equal(t, []string{"..", "downloads", "music", "Projects"}, d.entries)
	assert.Equal(t, 0, d.selected)
}

func TestDialogNoParentAtRoot(t *testing.T) {
	d := newDestDialog("/src/path", string(filepath.Separator))
	require.NotEmpty(t, d.entries)
	assert.NotEqual(t, "..", d.entries[0])
}

func TestDialogPartialPathListsBaseDir(t *testing.T) {
	root := dialogRoot(t)
	d := newDestDialog("/src/path", root)

	// A partially typed component resolves to its parent directory; the
	// listing is that directory's children, not a filtered subset.
	d.setPath(filepath.Join(root, "dow"))
	assert.Equal(t, []string{"..", "downloads", "music", "Projects"}, d.entries)
}

func TestDialogEnterSelectedDescends(t *testing.T) {
	root := dialogRoot(t)
	d := newDestDialog("/src/path", root)

	d.selected = 1 // "downloads"
	d.enterSelected()

	assert.Equal(t, filepath.Join(root, "downloads"), d.input.Value())
	assert.Equal(t, []string{".."}, d.entries)
}

func TestDialogParentAscends(t *testing.T) {
	root := dialogRoot(t)
	d := newDestDialog("/src/path", filepath.Join(root, "music"))

	require.Equal(t, "..", d.entries[0])
	d.enterSelected()

	assert.Equal(t, root, d.input.Value())
	assert.Contains(t, d.entries, "music")
}

func TestDialogConfirmedDir(t *testing.T) {
	root := dialogRoot(t)

	d := newDestDialog("/src/path", root)
	assert.Equal(t, root, d.confirmedDir())

	// A non-directory path falls back to its parent.
	d.setPath(filepath.Join(root, "file.txt"))
	assert.Equal(t, root, d.confirmedDir())

	d.setPath(filepath.Join(root, "does-not-exist"))
	assert.Equal(t, root, d.confirmedDir())
}

func TestDialogFocusCycle(t *testing.T) {
	d := newDestDialog("/src/path", t.TempDir())
	require.Equal(t, focusPath, d.focus)
	assert.True(t, d.input.Focused())

	d.focusNext()
	assert.Equal(t, focusConfirm, d.focus)
	assert.False(t, d.input.Focused())

	d.focusNext()
	assert.Equal(t, focusCancel, d.focus)

	d.focusNext()
	assert.Equal(t, focusPath, d.focus)
	assert.True(t, d.input.Focused())

	d.focusPrev()
	assert.Equal(t, focusCancel, d.focus)
}

func TestDialogSelectionClamps(t *testing.T) {
	root := dialogRoot(t)
	d := newDestDialog("/src/path", root)

	d.selectPrev()
	assert.Equal(t, 0, d.selected)

	for i := 0; i < 10; i++ {
		d.selectNext()
	}
	assert.Equal(t, len(d.entries)-1, d.selected)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandTilde("~"))
	assert.Equal(t, filepath.Join(home, "dl"), expandTilde("~/dl"))
	// Only a leading ~ segment expands.
	assert.Equal(t, "/data/~", expandTilde("/data/~"))
	assert.Equal(t, "~backup", expandTilde("~backup"))
}

func TestResolveDir(t *testing.T) {
	root := dialogRoot(t)

	assert.Equal(t, root, resolveDir(root))
	assert.Equal(t, root, resolveDir(filepath.Join(root, "mus")))
	assert.Equal(t, root, resolveDir(filepath.Join(root, "file.txt")))
	assert.Equal(t, string(filepath.Separator), resolveDir(""))
}
