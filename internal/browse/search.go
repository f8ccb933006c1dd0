package browse

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/snapview/internal/restic"
)

// Search filters the Files panel by case-insensitive substring match on the
// entry name. The filter is a view over the entry list: the underlying
// listing and the navigation cache are untouched, so cancelling is free.

// startSearch enters search mode. Requires the Files panel with at least
// one entry.
func (m *Model) startSearch() {
	if m.focus != PanelFiles || len(m.entries) == 0 {
		return
	}
	m.searchInput.Reset()
	m.searchInput.Focus()
	m.applySearchFilter()
	m.mode = ModeSearching
}

// handleSearchKey routes input while search mode is open. Only the arrow
// keys move the cursor here; letters like j and k belong to the query.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancel: drop the query and the match set.
		m.clearSearch()
		m.fileCursor = 0
		m.fileScroll = 0
		m.mode = ModeReady
		return m, nil

	case tea.KeyEnter:
		// Confirm: keep the filter active.
		m.searchInput.Blur()
		m.mode = ModeReady
		return m, nil

	case tea.KeyUp:
		m.applyMovement(MoveUp)
		return m, nil

	case tea.KeyDown:
		m.applyMovement(MoveDown)
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.applySearchFilter()
	}
	return m, cmd
}

// applySearchFilter recomputes the match set from scratch. The synthetic
// parent entry always matches; everything else matches iff the query is a
// case-insensitive substring of the name. Order follows the entry list.
func (m *Model) applySearchFilter() {
	m.matched = m.matched[:0]
	m.fileCursor = 0
	m.fileScroll = 0

	query := strings.ToLower(m.searchInput.Value())
	for i, e := range m.entries {
		if e.IsParent() || query == "" || strings.Contains(strings.ToLower(e.Name), query) {
			m.matched = append(m.matched, i)
		}
	}
}

func (m *Model) clearSearch() {
	m.searchInput.Reset()
	m.searchInput.Blur()
	m.matched = nil
}

// filterActive reports whether the filtered view drives rendering and
// movement: while search mode is open, and after confirm while the query
// remains non-empty.
func (m Model) filterActive() bool {
	return m.mode == ModeSearching || m.searchInput.Value() != ""
}

// visibleEntryCount is the Files panel item count under the active view.
func (m Model) visibleEntryCount() int {
	if m.filterActive() {
		return len(m.matched)
	}
	return len(m.entries)
}

// visibleEntries returns the Files panel rows under the active view.
func (m Model) visibleEntries() []restic.Entry {
	if !m.filterActive() {
		return m.entries
	}
	out := make([]restic.Entry, 0, len(m.matched))
	for _, i := range m.matched {
		if i < len(m.entries) {
			out = append(out, m.entries[i])
		}
	}
	return out
}

// entryAtCursor resolves the cursor through the active view.
func (m Model) entryAtCursor() (restic.Entry, bool) {
	if !m.filterActive() {
		if m.fileCursor < len(m.entries) {
			return m.entries[m.fileCursor], true
		}
		return restic.Entry{}, false
	}
	if m.fileCursor < len(m.matched) {
		i := m.matched[m.fileCursor]
		if i < len(m.entries) {
			return m.entries[i], true
		}
	}
	return restic.Entry{}, false
}
