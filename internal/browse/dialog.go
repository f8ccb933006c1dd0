package browse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/snapview/internal/restic"
)

// dialogFocus is which of the three dialog controls receives input.
type dialogFocus int

const (
	focusPath dialogFocus = iota // text input + directory list
	focusConfirm
	focusCancel
)

// destDialog is the restore-destination picker: an editable path, a listing
// of sub-directories of whatever directory the text currently resolves to,
// and the confirm/cancel buttons.
type destDialog struct {
	sourcePath string
	input      textinput.Model
	entries    []string // ".." first unless at filesystem root, then sub-directory names
	selected   int
	scroll     int
	focus      dialogFocus
}

func newDestDialog(sourcePath, startDir string) *destDialog {
	in := textinput.New()
	in.Prompt = ""
	in.SetValue(startDir)
	in.CursorEnd()
	in.Focus()

	d := &destDialog{
		sourcePath: sourcePath,
		input:      in,
		focus:      focusPath,
	}
	d.refresh()
	return d
}

// expandTilde resolves a leading ~ segment to the home directory. Only used
// for resolution; the visible text keeps the ~ so it stays editable.
func expandTilde(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// resolveDir maps the typed path to the directory whose children are
// listed: the path itself if it is a directory, its parent otherwise. A
// partially-typed name therefore selects the base directory to list, not a
// filter on its contents.
func resolveDir(p string) string {
	if p == "" {
		return string(filepath.Separator)
	}
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return p
	}
	parent := filepath.Dir(p)
	if parent == "" {
		return string(filepath.Separator)
	}
	return parent
}

// refresh rebuilds the sub-directory listing from the current input text
// and resets selection and scroll. Hidden directories are excluded and the
// rest sorted case-insensitively.
func (d *destDialog) refresh() {
	d.entries = d.entries[:0]
	d.selected = 0
	d.scroll = 0

	dir := resolveDir(expandTilde(d.input.Value()))

	if filepath.Dir(dir) != dir {
		d.entries = append(d.entries, restic.ParentName)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	names := make([]string, 0, len(dirents))
	for _, de := range dirents {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		names = append(names, de.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		return restic.CompareNames(names[i], names[j]) < 0
	})
	d.entries = append(d.entries, names...)
}

// updateInput routes a key press to the text input; any edit triggers a
// full listing refresh.
func (d *destDialog) updateInput(msg tea.KeyMsg) tea.Cmd {
	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.input.Value() != before {
		d.refresh()
	}
	return cmd
}

func (d *destDialog) selectPrev() {
	if d.selected > 0 {
		d.selected--
	}
}

func (d *destDialog) selectNext() {
	if d.selected < len(d.entries)-1 {
		d.selected++
	}
}

// enterSelected descends into the highlighted directory, committing it to
// the input text.
func (d *destDialog) enterSelected() {
	if d.selected < 0 || d.selected >= len(d.entries) {
		return
	}
	name := d.entries[d.selected]
	if name == restic.ParentName {
		d.goParent()
		return
	}

	base := resolveDir(expandTilde(d.input.Value()))
	d.setPath(filepath.Join(base, name))
}

// goParent moves the input text one directory up.
func (d *destDialog) goParent() {
	dir := resolveDir(expandTilde(d.input.Value()))
	parent := filepath.Dir(dir)
	if parent == dir {
		return
	}
	d.setPath(parent)
}

func (d *destDialog) setPath(p string) {
	d.input.SetValue(p)
	d.input.CursorEnd()
	d.refresh()
}

// confirmedDir resolves the final destination: the typed path if it names
// an existing directory, its parent otherwise.
func (d *destDialog) confirmedDir() string {
	expanded := expandTilde(d.input.Value())
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return expanded
	}
	return filepath.Dir(expanded)
}

// focusNext cycles Path → Confirm → Cancel → Path.
func (d *destDialog) focusNext() {
	switch d.focus {
	case focusPath:
		d.focus = focusConfirm
	case focusConfirm:
		d.focus = focusCancel
	case focusCancel:
		d.focus = focusPath
	}
	d.syncInputFocus()
}

// focusPrev cycles in the opposite direction.
func (d *destDialog) focusPrev() {
	switch d.focus {
	case focusPath:
		d.focus = focusCancel
	case focusConfirm:
		d.focus = focusPath
	case focusCancel:
		d.focus = focusConfirm
	}
	d.syncInputFocus()
}

func (d *destDialog) syncInputFocus() {
	if d.focus == focusPath {
		d.input.Focus()
	} else {
		d.input.Blur()
	}
}

// adjustScroll keeps the selection inside the visible window.
func (d *destDialog) adjustScroll(visible int) {
	if visible <= 0 {
		return
	}
	if d.selected < d.scroll {
		d.scroll = d.selected
	} else if d.selected >= d.scroll+visible {
		d.scroll = d.selected - visible + 1
	}
}
