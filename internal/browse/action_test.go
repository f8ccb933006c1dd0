package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Action
	}{
		{"q quits", keyRune("q"), Action{Kind: ActionQuit}},
		{"esc quits", keyOf(tea.KeyEsc), Action{Kind: ActionQuit}},
		{"ctrl+c quits", keyOf(tea.KeyCtrlC), Action{Kind: ActionQuit}},
		{"question mark is help", keyRune("?"), Action{Kind: ActionHelp}},
		{"k moves up", keyRune("k"), Action{Kind: ActionMove, Move: MoveUp}},
		{"arrow up moves up", keyOf(tea.KeyUp), Action{Kind: ActionMove, Move: MoveUp}},
		{"j moves down", keyRune("j"), Action{Kind: ActionMove, Move: MoveDown}},
		{"pgup pages up", keyOf(tea.KeyPgUp), Action{Kind: ActionMove, Move: MovePageUp}},
		{"ctrl+f pages down", keyOf(tea.KeyCtrlF), Action{Kind: ActionMove, Move: MovePageDown}},
		{"ctrl+u half page up", keyOf(tea.KeyCtrlU), Action{Kind: ActionMove, Move: MoveHalfPageUp}},
		{"g jumps to top", keyRune("g"), Action{Kind: ActionMove, Move: MoveTop}},
		{"capital G jumps to bottom", keyRune("G"), Action{Kind: ActionMove, Move: MoveBottom}},
		{"tab switches panel", keyOf(tea.KeyTab), Action{Kind: ActionPanelSwitch}},
		{"shift+tab switches panel", keyOf(tea.KeyShiftTab), Action{Kind: ActionPanelSwitch}},
		{"enter selects", keyOf(tea.KeyEnter), Action{Kind: ActionSelect}},
		{"backspace goes back", keyOf(tea.KeyBackspace), Action{Kind: ActionBack}},
		{"h goes back", keyRune("h"), Action{Kind: ActionBack}},
		{"slash starts search", keyRune("/"), Action{Kind: ActionSearch}},
		{"unbound key is none", keyRune("x"), Action{Kind: ActionNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.msg))
		})
	}
}

// The control modifier makes "ctrl+d" a distinct key from "d", so half-page
// movement and download never collide.
func TestClassifyCtrlDVsD(t *testing.T) {
	assert.Equal(t, Action{Kind: ActionMove, Move: MoveHalfPageDown}, Classify(keyOf(tea.KeyCtrlD)))
	assert.Equal(t, Action{Kind: ActionDownload}, Classify(keyRune("d")))
}

func TestMovementDelta(t *testing.T) {
	assert.Equal(t, -1, movementDelta(MoveUp, 10))
	assert.Equal(t, 1, movementDelta(MoveDown, 10))
	assert.Equal(t, -10, movementDelta(MovePageUp, 10))
	assert.Equal(t, 10, movementDelta(MovePageDown, 10))
	assert.Equal(t, 5, movementDelta(MoveHalfPageDown, 10))
	assert.Equal(t, -5, movementDelta(MoveHalfPageUp, 10))
	assert.Equal(t, deltaTop, movementDelta(MoveTop, 10))
	assert.Equal(t, deltaBottom, movementDelta(MoveBottom, 10))

	// Degenerate heights still move at least one row.
	assert.Equal(t, 1, movementDelta(MoveHalfPageDown, 0))
	assert.Equal(t, 1, movementDelta(MoveHalfPageDown, 1))
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(0, -1, 9))
	assert.Equal(t, 9, clampCursor(9, 1, 9))
	assert.Equal(t, 5, clampCursor(4, 1, 9))
	assert.Equal(t, 0, clampCursor(3, -10, 9))
	assert.Equal(t, 9, clampCursor(3, 100, 9))
	assert.Equal(t, 0, clampCursor(7, deltaTop, 9))
	assert.Equal(t, 9, clampCursor(2, deltaBottom, 9))
	// The sentinels land exactly even on a single-item list.
	assert.Equal(t, 0, clampCursor(0, deltaBottom, 0))
}

func TestMiddleTruncate(t *testing.T) {
	assert.Equal(t, "short", middleTruncate("short", 20))
	assert.Equal(t, "", middleTruncate("anything", 0))

	got := middleTruncate("abcdefghijklmnop", 9)
	assert.Contains(t, got, "…")
	assert.True(t, len([]rune(got)) <= 9)
	assert.Equal(t, "abcd…mnop", got)

	// Double-width runes count as two columns.
	got = middleTruncate("日本語テキスト", 7)
	assert.Contains(t, got, "…")
}

func TestRightTruncate(t *testing.T) {
	assert.Equal(t, "/etc", rightTruncate("/etc", 10))
	assert.Equal(t, "…ocal/share", rightTruncate("/home/user/.local/share", 11))
}
