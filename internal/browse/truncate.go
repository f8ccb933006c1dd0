package browse

import "github.com/mattn/go-runewidth"

// middleTruncate shortens s to maxWidth display columns by replacing its
// middle with an ellipsis. Width-aware, so CJK characters and emoji that
// occupy two columns are handled correctly. Below three columns there is
// no room for head + ellipsis + tail, so it hard-truncates instead.
func middleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"
	if maxWidth < 3 {
		return truncPrefix(s, maxWidth)
	}

	remaining := maxWidth - 1
	head := truncPrefix(s, (remaining+1)/2)
	tail := truncSuffix(s, remaining/2)
	return head + ellipsis + tail
}

// rightTruncate shortens s to maxWidth columns keeping the tail, preceded
// by an ellipsis. Used for paths where the deepest components matter most.
func rightTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 2 {
		return truncSuffix(s, maxWidth)
	}
	return "…" + truncSuffix(s, maxWidth-1)
}

// truncPrefix returns the longest prefix of s not exceeding maxWidth
// display columns.
func truncPrefix(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// truncSuffix returns the longest suffix of s not exceeding maxWidth
// display columns.
func truncSuffix(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
