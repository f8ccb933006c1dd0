package browse

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/snapview/internal/restic"
)

// Backend is the archive contract the browser consumes. All three
// operations are run on background goroutines by the Bubble Tea runtime;
// implementations must not share mutable state with the model.
type Backend interface {
	ListSnapshots(ctx context.Context) ([]restic.Snapshot, error)
	ListEntries(ctx context.Context, snapshotID, path string) ([]restic.Entry, error)
	Restore(ctx context.Context, snapshotID, sourcePath, targetDir string) error
}

// snapshotsLoadedMsg carries the result of a snapshot listing.
type snapshotsLoadedMsg struct {
	snapshots []restic.Snapshot
	err       error
}

// entriesLoadedMsg carries the result of a directory listing.
type entriesLoadedMsg struct {
	path    string
	entries []restic.Entry
	err     error
}

// restoreDoneMsg carries the outcome of a restore.
type restoreDoneMsg struct {
	source string
	target string
	err    error
}

// In-flight operations run to completion; the user can only wait, so
// commands use the background context. The model suppresses further
// navigation and restore actions while one is outstanding, which is what
// keeps completions from ever arriving against stale state.

func listSnapshotsCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		snapshots, err := b.ListSnapshots(context.Background())
		return snapshotsLoadedMsg{snapshots: snapshots, err: err}
	}
}

func listEntriesCmd(b Backend, snapshotID, path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := b.ListEntries(context.Background(), snapshotID, path)
		return entriesLoadedMsg{path: path, entries: entries, err: err}
	}
}

func restoreCmd(b Backend, snapshotID, source, target string) tea.Cmd {
	return func() tea.Msg {
		err := b.Restore(context.Background(), snapshotID, source, target)
		return restoreDoneMsg{source: source, target: target, err: err}
	}
}
