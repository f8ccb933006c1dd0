package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	focusedPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	selectedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	normalStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dirStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	searchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("252"))
	buttonFocusStyle  = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	dialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2)
)

// panelChrome is the rows a bordered panel spends on its frame and title.
const panelChrome = 3

// logPanelRows is the height of the operation log panel, content only.
func (m Model) logPanelRows() int {
	rows := m.termHeight() / 5
	if rows < 3 {
		rows = 3
	}
	if rows > 8 {
		rows = 8
	}
	return rows
}

func (m Model) termHeight() int {
	if m.height > 0 {
		return m.height
	}
	return 24 // sensible default before the first WindowSizeMsg
}

func (m Model) termWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

// mainRows is the height available to the two list panels, content only.
// The bottom chrome is the log panel, the optional search bar and the
// status line.
func (m Model) mainRows() int {
	chrome := m.logPanelRows() + panelChrome - 1 + 1 // log panel + status line
	if m.filterActive() {
		chrome++
	}
	rows := m.termHeight() - chrome - panelChrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

// snapshotViewRows is the visible row count of the snapshots panel, the
// height movement deltas are resolved against.
func (m Model) snapshotViewRows() int { return m.mainRows() }

// fileViewRows is the visible row count of the files panel.
func (m Model) fileViewRows() int { return m.mainRows() }

func (m Model) snapshotPanelWidth() int {
	w := m.termWidth() * 35 / 100
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case ModeHelp:
		return m.viewHelp()
	case ModePickingDest:
		return m.viewDialog()
	}
	return m.viewMain()
}

func (m Model) viewMain() string {
	var b strings.Builder

	snapW := m.snapshotPanelWidth()
	fileW := m.termWidth() - snapW
	rows := m.mainRows()

	left := m.viewSnapshots(snapW-2, rows)
	right := m.viewFiles(fileW-2, rows)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteRune('\n')

	b.WriteString(m.viewOps(m.termWidth()-2, m.logPanelRows()))
	b.WriteRune('\n')

	if m.filterActive() {
		b.WriteString(m.viewSearchBar())
		b.WriteRune('\n')
	}

	b.WriteString(m.viewStatus())
	return b.String()
}

// viewSnapshots renders the snapshots panel at the given content size.
func (m Model) viewSnapshots(w, rows int) string {
	style := panelStyle
	if m.focus == PanelSnapshots {
		style = focusedPanelStyle
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Snapshots (%d)", len(m.snapshots))))
	b.WriteRune('\n')

	if m.mode == ModeLoading && len(m.snapshots) == 0 {
		b.WriteString(dimStyle.Render(m.spin.View() + " Loading snapshots..."))
	} else if len(m.snapshots) == 0 {
		b.WriteString(dimStyle.Render("No snapshots"))
	} else {
		end := m.snapScroll + rows
		if end > len(m.snapshots) {
			end = len(m.snapshots)
		}
		for i := m.snapScroll; i < end; i++ {
			s := m.snapshots[i]
			line := fmt.Sprintf("%s  %s  %s:%s", s.DisplayID(), s.FormattedTime(), s.Hostname, s.PrimaryPath())
			if len(s.Tags) > 0 {
				line += "  [" + strings.Join(s.Tags, ",") + "]"
			}
			line = middleTruncate(line, w-2)
			if i == m.snapCursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(normalStyle.Render("  " + line))
			}
			if i < end-1 {
				b.WriteRune('\n')
			}
		}
	}

	return style.Width(w).Height(rows + 1).Render(b.String())
}

// viewFiles renders the files panel at the given content size.
func (m Model) viewFiles(w, rows int) string {
	style := panelStyle
	if m.focus == PanelFiles {
		style = focusedPanelStyle
	}

	var b strings.Builder
	title := "Files"
	if m.currentPath != "" {
		title = rightTruncate(m.currentPath, w)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteRune('\n')

	switch {
	case m.snapshotID == "":
		b.WriteString(dimStyle.Render("Select a snapshot"))

	case m.mode == ModeLoading:
		b.WriteString(dimStyle.Render(m.spin.View() + " Loading..."))

	default:
		entries := m.visibleEntries()
		if len(entries) == 0 {
			b.WriteString(dimStyle.Render("Empty"))
			break
		}
		end := m.fileScroll + rows
		if end > len(entries) {
			end = len(entries)
		}
		for i := m.fileScroll; i < end; i++ {
			e := entries[i]
			size := e.FormattedSize()
			name := middleTruncate(e.Name, w-len(size)-5)
			pad := w - 4 - lipgloss.Width(name) - len(size)
			if pad < 1 {
				pad = 1
			}
			line := name + strings.Repeat(" ", pad) + size
			switch {
			case i == m.fileCursor:
				b.WriteString(selectedStyle.Render("> " + line))
			case e.IsDir():
				b.WriteString(dirStyle.Render("  " + line))
			default:
				b.WriteString(normalStyle.Render("  " + line))
			}
			if i < end-1 {
				b.WriteRune('\n')
			}
		}
	}

	return style.Width(w).Height(rows + 1).Render(b.String())
}

// viewOps renders the operation log panel, newest entries at the bottom.
func (m Model) viewOps(w, rows int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Log"))

	start := len(m.ops) - rows
	if start < 0 {
		start = 0
	}
	for _, op := range m.ops[start:] {
		b.WriteRune('\n')
		mark := okStyle.Render("ok")
		if !op.ok {
			mark = errorStyle.Render("!!")
		}
		line := op.what
		if op.detail != "" {
			line += "  " + op.detail
		}
		b.WriteString(dimStyle.Render(op.at.Format("15:04:05")) + " " + mark + " " + middleTruncate(line, w-13))
	}

	return panelStyle.Width(w).Height(rows + 1).Render(b.String())
}

// viewSearchBar renders the query line below the panels.
func (m Model) viewSearchBar() string {
	count := fmt.Sprintf("  %d/%d", len(m.matched), len(m.entries))
	if m.mode == ModeSearching {
		return searchStyle.Render(m.searchInput.View()) + dimStyle.Render(count)
	}
	return searchStyle.Render("/"+m.searchInput.Value()) + dimStyle.Render(count)
}

// viewStatus renders the bottom status line.
func (m Model) viewStatus() string {
	switch m.mode {
	case ModeError:
		return errorStyle.Render(middleTruncate("Error: "+m.errMsg, m.termWidth()-1)) + statusStyle.Render("  (any key to dismiss)")
	case ModeDownloading:
		return statusStyle.Render(m.spin.View() + " Restoring " + rightTruncate(m.downloading, m.termWidth()-14) + " ...")
	case ModeLoading:
		return statusStyle.Render(m.spin.View() + " Loading...")
	case ModeSearching:
		return statusStyle.Render("enter confirm · esc cancel · ↑/↓ move")
	}
	if m.statusMsg != "" {
		return okStyle.Render(middleTruncate(m.statusMsg, m.termWidth()-1))
	}
	return statusStyle.Render("q quit · ? help · tab panel · enter open · d download · / search")
}

// viewHelp renders the full-screen key reference.
func (m Model) viewHelp() string {
	rows := []struct{ keys, desc string }{
		{"↑/k, ↓/j", "move cursor"},
		{"pgup/ctrl+b, pgdown/ctrl+f", "page up / down"},
		{"ctrl+u, ctrl+d", "half page up / down"},
		{"g/home, G/end", "jump to top / bottom"},
		{"tab", "switch panel"},
		{"enter", "open snapshot or directory"},
		{"backspace, left, h", "parent directory"},
		{"d", "download highlighted entry"},
		{"/", "search in current directory"},
		{"?", "toggle this help"},
		{"q, esc, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("\n  %-28s %s", searchStyle.Render(r.keys), normalStyle.Render(r.desc)))
	}
	b.WriteString("\n\n" + dimStyle.Render("press ? or q to close"))

	return lipgloss.Place(m.termWidth(), m.termHeight(), lipgloss.Center, lipgloss.Center,
		dialogStyle.Render(b.String()))
}

// dialogListRows is how many directory names the picker shows at once.
const dialogListRows = 8

// viewDialog renders the restore-destination picker centered on screen.
func (m Model) viewDialog() string {
	d := m.dialog
	if d == nil {
		return ""
	}

	boxW := m.termWidth() * 2 / 3
	if boxW < 40 {
		boxW = 40
	}
	innerW := boxW - 6

	var b strings.Builder
	b.WriteString(titleStyle.Render("Download"))
	b.WriteString("\n" + dimStyle.Render(rightTruncate(d.sourcePath, innerW)))
	b.WriteString("\n\n")

	inputLine := d.input.View()
	if d.focus == focusPath {
		inputLine = searchStyle.Render("> ") + inputLine
	} else {
		inputLine = dimStyle.Render("  ") + inputLine
	}
	b.WriteString(inputLine)
	b.WriteRune('\n')

	d.adjustScroll(dialogListRows)
	end := d.scroll + dialogListRows
	if end > len(d.entries) {
		end = len(d.entries)
	}
	for i := d.scroll; i < end; i++ {
		name := middleTruncate(d.entries[i], innerW-2)
		b.WriteRune('\n')
		if i == d.selected && d.focus == focusPath {
			b.WriteString(selectedStyle.Render("> " + name))
		} else {
			b.WriteString(dirStyle.Render("  " + name))
		}
	}

	confirm := buttonStyle.Render("Download")
	if d.focus == focusConfirm {
		confirm = buttonFocusStyle.Render("Download")
	}
	cancel := buttonStyle.Render("Cancel")
	if d.focus == focusCancel {
		cancel = buttonFocusStyle.Render("Cancel")
	}
	b.WriteString("\n\n" + confirm + "  " + cancel)
	b.WriteString("\n" + dimStyle.Render("tab cycle · enter select · esc close"))

	return lipgloss.Place(m.termWidth(), m.termHeight(), lipgloss.Center, lipgloss.Center,
		dialogStyle.Width(boxW).Render(b.String()))
}
