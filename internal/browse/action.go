package browse

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionKind is the semantic category a key press resolves to.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionHelp
	ActionMove
	ActionPanelSwitch
	ActionSelect
	ActionBack
	ActionDownload
	ActionSearch
)

// Movement is a symbolic cursor movement. Page and half-page amounts are
// resolved against the focused panel's visible height at apply time.
type Movement int

const (
	MoveUp Movement = iota
	MoveDown
	MovePageUp
	MovePageDown
	MoveHalfPageUp
	MoveHalfPageDown
	MoveTop
	MoveBottom
)

// Action is the classified meaning of one key press. Move is only
// meaningful when Kind == ActionMove.
type Action struct {
	Kind ActionKind
	Move Movement
}

// keyMap declares every binding the classifier recognizes.
type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Panel    key.Binding
	Select   key.Binding
	Back     key.Binding
	Download key.Binding
	Search   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("ctrl+b", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("ctrl+f", "page down")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Panel:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("backspace", "left", "h"), key.WithHelp("backspace", "back")),
	Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
}

// Classify maps a key press to its semantic action. Priority is fixed:
// quit > help > movement > panel-switch > select > back > download >
// search-start. Control-modified letters are distinct key strings
// ("ctrl+d" vs "d"), so half-page movement wins over download by the
// movement check running first.
func Classify(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, keys.Quit):
		return Action{Kind: ActionQuit}
	case key.Matches(msg, keys.Help):
		return Action{Kind: ActionHelp}
	case key.Matches(msg, keys.Up):
		return Action{Kind: ActionMove, Move: MoveUp}
	case key.Matches(msg, keys.Down):
		return Action{Kind: ActionMove, Move: MoveDown}
	case key.Matches(msg, keys.PageUp):
		return Action{Kind: ActionMove, Move: MovePageUp}
	case key.Matches(msg, keys.PageDown):
		return Action{Kind: ActionMove, Move: MovePageDown}
	case key.Matches(msg, keys.HalfUp):
		return Action{Kind: ActionMove, Move: MoveHalfPageUp}
	case key.Matches(msg, keys.HalfDown):
		return Action{Kind: ActionMove, Move: MoveHalfPageDown}
	case key.Matches(msg, keys.Top):
		return Action{Kind: ActionMove, Move: MoveTop}
	case key.Matches(msg, keys.Bottom):
		return Action{Kind: ActionMove, Move: MoveBottom}
	case key.Matches(msg, keys.Panel):
		return Action{Kind: ActionPanelSwitch}
	case key.Matches(msg, keys.Select):
		return Action{Kind: ActionSelect}
	case key.Matches(msg, keys.Back):
		return Action{Kind: ActionBack}
	case key.Matches(msg, keys.Download):
		return Action{Kind: ActionDownload}
	case key.Matches(msg, keys.Search):
		return Action{Kind: ActionSearch}
	}
	return Action{Kind: ActionNone}
}
