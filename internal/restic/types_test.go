package restic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDirectChild(t *testing.T) {
	tests := []struct {
		child, parent string
		want          bool
	}{
		{"/home/docs", "/home", true},
		{"/home/docs/", "/home", true},
		{"/home/docs", "/home/", true},
		{"/home/docs/notes.txt", "/home", false},
		{"/home", "/home", false},
		{"/homework", "/home", false},
		{"/home", "/", true},
		{"/home/docs", "/", false},
		{"/", "/", false},
		{"/etc", "", true},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, isDirectChild(tt.child, tt.parent),
			"isDirectChild(%q, %q)", tt.child, tt.parent)
	}
}

func TestParentEntry(t *testing.T) {
	e := ParentEntry("/home/docs")
	assert.Equal(t, ParentName, e.Name)
	assert.Equal(t, "/home", e.Path)
	assert.True(t, e.IsDir())
	assert.True(t, e.IsParent())

	assert.Equal(t, "/", ParentEntry("/home").Path)
	assert.Equal(t, "/", ParentEntry("/").Path)
}

func TestSortEntriesDirsFirstCaseInsensitive(t *testing.T) {
	size := int64(512)
	entries := []Entry{
		{Name: "zeta.txt", Type: "file", Path: "/r/zeta.txt", Size: &size},
		{Name: "Alpha", Type: "dir", Path: "/r/Alpha"},
		{Name: "beta.txt", Type: "file", Path: "/r/beta.txt", Size: &size},
		{Name: "alpha2", Type: "dir", Path: "/r/alpha2"},
		{Name: "Beta.txt", Type: "file", Path: "/r/Beta.txt", Size: &size},
	}
	SortEntries(entries)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Alpha", "alpha2", "beta.txt", "Beta.txt", "zeta.txt"}, names)
}

func TestSortSnapshotsNewestFirst(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	snaps := []Snapshot{
		{ID: "abc123", ShortID: "abc123", Time: t1},
		{ID: "def456", ShortID: "def456", Time: t2},
	}
	SortSnapshots(snaps)
	assert.Equal(t, "def456", snaps[0].ShortID)
	assert.Equal(t, "abc123", snaps[1].ShortID)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KB", FormatBytes(1024))
	assert.Equal(t, "1.5 MB", FormatBytes(3*1<<20/2))
	assert.Equal(t, "2.0 GB", FormatBytes(2*1<<30))
}

func TestFormattedSize(t *testing.T) {
	size := int64(2048)
	assert.Equal(t, "[DIR]", Entry{Type: "dir"}.FormattedSize())
	assert.Equal(t, "-", Entry{Type: "file"}.FormattedSize())
	assert.Equal(t, "2.0 KB", Entry{Type: "file", Size: &size}.FormattedSize())
}

func TestSnapshotDisplay(t *testing.T) {
	s := Snapshot{ID: "0123456789abcdef", ShortID: "01234567", Paths: []string{"/home", "/etc"}}
	assert.Equal(t, "01234567", s.DisplayID())
	assert.Equal(t, "/home", s.PrimaryPath())

	assert.Equal(t, "01234567", Snapshot{ID: "0123456789abcdef"}.DisplayID())
	assert.Equal(t, "/", Snapshot{}.PrimaryPath())
}
