// Package browse implements the snapshot browser: the application state
// machine, its input routing, the navigation cache, file search, and the
// restore-destination dialog.
package browse

import (
	"fmt"
	"path"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/snapview/internal/restic"
)

// Mode is the mutually exclusive top-level state. It gates which input
// routing table is active.
type Mode int

const (
	ModeLoading Mode = iota
	ModeReady
	ModeSearching
	ModePickingDest
	ModeDownloading
	ModeError
	ModeHelp
)

// Panel identifies which list panel has focus.
type Panel int

const (
	PanelSnapshots Panel = iota
	PanelFiles
)

// maxOpRecords bounds the in-memory operation log shown in the bottom
// panel. The structured file log is unbounded.
const maxOpRecords = 100

// opRecord is one line of the operation log panel.
type opRecord struct {
	at     time.Time
	what   string
	ok     bool
	detail string
}

// Model is the application state machine. It is mutated only inside
// Update; background work communicates exclusively through typed messages.
type Model struct {
	backend Backend

	mode        Mode
	prevMode    Mode   // mode to return to when help closes
	errMsg      string // display text while mode == ModeError
	downloading string // source path while mode == ModeDownloading
	focus       Panel
	quitting    bool

	// Snapshots panel.
	snapshots  []restic.Snapshot
	snapCursor int
	snapScroll int

	// Files panel. entries always includes the synthetic ".." entry when
	// currentPath is below the snapshot root.
	snapshotID   string // empty until a snapshot is selected
	snapshotRoot string
	currentPath  string
	entries      []restic.Entry
	matched      []int // indices into entries matching the search query
	fileCursor   int
	fileScroll   int

	nav navStack

	searchInput textinput.Model

	dialog          *destDialog
	lastDownloadDir string

	statusMsg string

	spin spinner.Model

	ops []opRecord

	width  int
	height int
}

// New builds the initial model. downloadDir is the first destination the
// dialog offers, typically the process working directory.
func New(backend Backend, downloadDir string) Model {
	search := textinput.New()
	search.Prompt = "/"
	search.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		backend:         backend,
		mode:            ModeLoading,
		focus:           PanelSnapshots,
		searchInput:     search,
		lastDownloadDir: downloadDir,
		spin:            sp,
	}
}

// Init implements tea.Model: kick off the initial snapshot listing.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, listSnapshotsCmd(m.backend))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScrolls()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil // stop the tick chain once idle
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotsLoadedMsg:
		return m.foldSnapshots(msg)

	case entriesLoadedMsg:
		return m.foldEntries(msg)

	case restoreDoneMsg:
		return m.foldRestore(msg)
	}

	return m, nil
}

// busy reports whether a background operation is outstanding.
func (m Model) busy() bool {
	return m.mode == ModeLoading || m.mode == ModeDownloading
}

// --- Result fold-ins ---

func (m Model) foldSnapshots(msg snapshotsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.recordOp("snapshots", false, msg.err.Error())
		m.mode = ModeError
		m.errMsg = msg.err.Error()
		return m, nil
	}

	m.recordOp("snapshots", true, fmt.Sprintf("%d found", len(msg.snapshots)))
	m.snapshots = msg.snapshots
	m.snapCursor = 0
	m.snapScroll = 0
	m.mode = ModeReady
	return m, nil
}

func (m Model) foldEntries(msg entriesLoadedMsg) (tea.Model, tea.Cmd) {
	what := fmt.Sprintf("ls %s %s", shortID(m.snapshotID), msg.path)
	if msg.err != nil {
		m.recordOp(what, false, msg.err.Error())
		m.mode = ModeError
		m.errMsg = msg.err.Error()
		return m, nil
	}

	m.recordOp(what, true, fmt.Sprintf("%d entries", len(msg.entries)))
	m.setEntries(msg.entries)
	return m, nil
}

func (m Model) foldRestore(msg restoreDoneMsg) (tea.Model, tea.Cmd) {
	what := fmt.Sprintf("restore %s -> %s", msg.source, msg.target)
	m.downloading = ""
	if msg.err != nil {
		m.recordOp(what, false, msg.err.Error())
		m.mode = ModeError
		m.errMsg = msg.err.Error()
		return m, nil
	}

	m.recordOp(what, true, "")
	m.mode = ModeReady
	m.statusMsg = "Restored to: " + msg.target
	return m, nil
}

// setEntries replaces the Files panel listing. The synthetic parent entry
// is injected whenever the current path is below the snapshot root. This
// and cache restoration are the only mutators of the entry list.
func (m *Model) setEntries(entries []restic.Entry) {
	if m.currentPath != m.snapshotRoot && m.currentPath != "" && path.Dir(m.currentPath) != m.currentPath {
		entries = append([]restic.Entry{restic.ParentEntry(m.currentPath)}, entries...)
	}

	m.entries = entries
	m.matched = nil
	m.searchInput.Reset()
	m.fileCursor = 0
	m.fileScroll = 0
	m.mode = ModeReady
}

// recordOp appends to the bounded in-memory operation log.
func (m *Model) recordOp(what string, ok bool, detail string) {
	m.ops = append(m.ops, opRecord{at: time.Now(), what: what, ok: ok, detail: detail})
	if len(m.ops) > maxOpRecords {
		m.ops = m.ops[len(m.ops)-maxOpRecords:]
	}
}

// --- Key routing ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModePickingDest {
		return m.handleDialogKey(msg)
	}
	if m.mode == ModeSearching {
		return m.handleSearchKey(msg)
	}

	act := Classify(msg)

	// Quit and help work everywhere, including while busy. Inside help,
	// the quit key dismisses the overlay instead of exiting.
	switch act.Kind {
	case ActionQuit:
		if m.mode == ModeHelp {
			m.mode = m.prevMode
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case ActionHelp:
		if m.mode == ModeHelp {
			m.mode = m.prevMode
		} else {
			m.prevMode = m.mode
			if m.prevMode == ModeError {
				m.prevMode = ModeReady
			}
			m.mode = ModeHelp
		}
		return m, nil
	}

	// All other input is swallowed while a background operation runs or
	// the help overlay is up.
	if m.mode == ModeHelp || m.busy() {
		return m, nil
	}

	// Error is a transient overlay: the next key clears it and is then
	// processed normally.
	if m.mode == ModeError {
		m.mode = ModeReady
		m.errMsg = ""
	}
	m.statusMsg = ""

	switch act.Kind {
	case ActionMove:
		m.applyMovement(act.Move)
		return m, nil

	case ActionPanelSwitch:
		m.switchPanel()
		return m, nil

	case ActionSelect:
		return m.selectItem()

	case ActionBack:
		return m.goBack()

	case ActionDownload:
		m.openDownloadDialog()
		return m, nil

	case ActionSearch:
		m.startSearch()
		return m, nil
	}

	return m, nil
}

// switchPanel toggles focus between the two panels.
func (m *Model) switchPanel() {
	if m.focus == PanelSnapshots {
		m.focus = PanelFiles
	} else {
		m.focus = PanelSnapshots
	}
}

// applyMovement resolves a movement against the focused panel using its
// live item count and last-known visible height, clamping into range.
func (m *Model) applyMovement(mv Movement) {
	var count, visible int
	var cursor *int
	switch m.focus {
	case PanelSnapshots:
		count = len(m.snapshots)
		visible = m.snapshotViewRows()
		cursor = &m.snapCursor
	case PanelFiles:
		count = m.visibleEntryCount()
		visible = m.fileViewRows()
		cursor = &m.fileCursor
	}

	if count == 0 {
		return
	}
	*cursor = clampCursor(*cursor, movementDelta(mv, visible), count-1)
	m.adjustScrolls()
}

// selectItem handles Enter on the focused panel.
func (m Model) selectItem() (tea.Model, tea.Cmd) {
	switch m.focus {
	case PanelSnapshots:
		if m.snapCursor >= len(m.snapshots) {
			return m, nil
		}
		snap := m.snapshots[m.snapCursor]
		m.snapshotID = snap.ID
		m.snapshotRoot = snap.PrimaryPath()
		m.currentPath = snap.PrimaryPath()
		m.focus = PanelFiles
		m.fileCursor = 0
		m.fileScroll = 0
		m.nav.clear()
		m.clearSearch()
		m.mode = ModeLoading
		return m, tea.Batch(m.spin.Tick, listEntriesCmd(m.backend, snap.ID, m.currentPath))

	case PanelFiles:
		entry, ok := m.entryAtCursor()
		if !ok || !entry.IsDir() {
			return m, nil // files are restored via download, not select
		}
		if entry.IsParent() {
			return m.goBack()
		}

		m.nav.push(navFrame{
			path:    m.currentPath,
			entries: m.entries,
			cursor:  m.fileCursor,
			scroll:  m.fileScroll,
		})
		m.currentPath = entry.Path
		m.fileCursor = 0
		m.clearSearch()
		m.mode = ModeLoading
		return m, tea.Batch(m.spin.Tick, listEntriesCmd(m.backend, m.snapshotID, entry.Path))
	}

	return m, nil
}

// goBack ascends one directory: from the navigation cache when possible
// (free, synchronous), otherwise by fetching the parent listing. A parent
// equal to the current path means we are at the filesystem root.
func (m Model) goBack() (tea.Model, tea.Cmd) {
	if m.focus != PanelFiles || m.snapshotID == "" {
		return m, nil
	}

	if frame, ok := m.nav.pop(); ok {
		m.currentPath = frame.path
		m.entries = frame.entries
		m.fileCursor = frame.cursor
		m.fileScroll = frame.scroll
		m.clearSearch()
		m.mode = ModeReady
		return m, nil
	}

	parent := path.Dir(m.currentPath)
	if parent == m.currentPath {
		return m, nil
	}

	m.currentPath = parent
	m.fileCursor = 0
	m.mode = ModeLoading
	return m, tea.Batch(m.spin.Tick, listEntriesCmd(m.backend, m.snapshotID, parent))
}

// openDownloadDialog enters destination picking for the highlighted entry.
func (m *Model) openDownloadDialog() {
	if m.focus != PanelFiles {
		return
	}
	entry, ok := m.entryAtCursor()
	if !ok || entry.IsParent() {
		return
	}

	m.dialog = newDestDialog(entry.Path, m.lastDownloadDir)
	m.mode = ModePickingDest
}

// --- Download dialog routing ---

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	if d == nil {
		m.mode = ModeReady
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.dialog = nil
		m.mode = ModeReady
		return m, nil

	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyTab:
		d.focusNext()
		return m, nil

	case tea.KeyShiftTab:
		d.focusPrev()
		return m, nil
	}

	switch d.focus {
	case focusPath:
		switch msg.Type {
		case tea.KeyUp:
			d.selectPrev()
			return m, nil
		case tea.KeyDown:
			d.selectNext()
			return m, nil
		case tea.KeyEnter:
			d.enterSelected()
			return m, nil
		}
		return m, d.updateInput(msg)

	case focusConfirm:
		if msg.Type == tea.KeyEnter {
			source := d.sourcePath
			target := d.confirmedDir()
			m.lastDownloadDir = target
			m.dialog = nil
			m.downloading = source
			m.mode = ModeDownloading
			return m, tea.Batch(m.spin.Tick, restoreCmd(m.backend, m.snapshotID, source, target))
		}

	case focusCancel:
		if msg.Type == tea.KeyEnter {
			m.dialog = nil
			m.mode = ModeReady
		}
	}

	return m, nil
}

// --- Scroll maintenance ---

// adjustScrolls keeps each panel's cursor inside its visible window using
// the heights derived from the last reported terminal size.
func (m *Model) adjustScrolls() {
	m.snapScroll = adjustScroll(m.snapCursor, m.snapScroll, m.snapshotViewRows())
	m.fileScroll = adjustScroll(m.fileCursor, m.fileScroll, m.fileViewRows())
}

func adjustScroll(cursor, scroll, visible int) int {
	if visible <= 0 {
		return scroll
	}
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+visible {
		return cursor - visible + 1
	}
	return scroll
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
