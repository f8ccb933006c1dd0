// Package restic drives the external restic binary and parses its JSON
// output into the types the browser works with.
package restic

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ParentName is the display name of the synthetic parent entry injected
// above the top of a listing. It is never produced by restic itself.
const ParentName = ".."

// Snapshot is one point-in-time capture in the repository, as emitted by
// `restic snapshots --json`.
type Snapshot struct {
	ID       string    `json:"id"`
	ShortID  string    `json:"short_id"`
	Time     time.Time `json:"time"`
	Paths    []string  `json:"paths"`
	Hostname string    `json:"hostname"`
	Username string    `json:"username"`
	Tags     []string  `json:"tags"`
}

// DisplayID returns the identifier shown in listings.
func (s Snapshot) DisplayID() string {
	if s.ShortID != "" {
		return s.ShortID
	}
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// PrimaryPath returns the first captured root path, the entry point for
// browsing the snapshot.
func (s Snapshot) PrimaryPath() string {
	if len(s.Paths) > 0 {
		return s.Paths[0]
	}
	return "/"
}

// FormattedTime renders the creation time for display.
func (s Snapshot) FormattedTime() string {
	return s.Time.Format("2006-01-02 15:04")
}

// Entry is a single node from `restic ls --json`: a file or directory as it
// appeared inside a snapshot.
type Entry struct {
	Name string `json:"name"`
	Type string `json:"type"` // "file" or "dir"
	Path string `json:"path"`
	Size *int64 `json:"size,omitempty"` // nil for directories
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == "dir"
}

// IsParent reports whether this is the synthetic ".." entry.
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// FormattedSize renders the size column for display.
func (e Entry) FormattedSize() string {
	if e.IsDir() {
		return "[DIR]"
	}
	if e.Size == nil {
		return "-"
	}
	return FormatBytes(*e.Size)
}

// FormatBytes renders a byte count as a human-readable size.
func FormatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(gb))
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// ParentEntry builds the synthetic ".." entry pointing at the parent of
// currentPath. Snapshot paths are always slash-separated regardless of the
// platform the repository was captured on.
func ParentEntry(currentPath string) Entry {
	parent := path.Dir(currentPath)
	if parent == "" || parent == "." {
		parent = "/"
	}
	return Entry{
		Name: ParentName,
		Type: "dir",
		Path: parent,
	}
}

// nameCollator orders names case-insensitively, matching restic's own
// listing order independent of the process locale.
var nameCollator = collate.New(language.Und, collate.IgnoreCase)

// CompareNames orders two entry names case-insensitively.
func CompareNames(a, b string) int {
	return nameCollator.CompareString(a, b)
}

// SortEntries orders a listing the way the panels display it: directories
// first, then files, each group case-insensitive by name.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return CompareNames(a.Name, b.Name) < 0
	})
}

// SortSnapshots orders snapshots newest first.
func SortSnapshots(snapshots []Snapshot) {
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Time.After(snapshots[j].Time)
	})
}

// isDirectChild reports whether child is exactly one path component below
// parent. Used to reduce the recursive `restic ls` output to a flat listing.
func isDirectChild(child, parent string) bool {
	c := trimTrailingSlash(child)
	p := trimTrailingSlash(parent)

	if c == p || len(c) <= len(p) {
		return false
	}
	if p == "" || p == "/" {
		rest := strings.TrimLeft(c, "/")
		return rest != "" && !strings.Contains(rest, "/")
	}
	if !strings.HasPrefix(c, p) || c[len(p)] != '/' {
		return false
	}
	rest := c[len(p)+1:]
	return rest != "" && !strings.Contains(rest, "/")
}

func trimTrailingSlash(s string) string {
	for len(s) > 1 && strings.HasSuffix(s, "/") {
		s = s[:len(s)-1]
	}
	return s
}
