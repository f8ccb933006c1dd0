package browse

import "math"

// Jump-to-top/bottom are encoded as out-of-range delta sentinels so they
// land exactly regardless of item count.
const (
	deltaTop    = math.MinInt
	deltaBottom = math.MaxInt
)

// movementDelta resolves a symbolic movement to a cursor delta using the
// panel's visible height.
func movementDelta(m Movement, visible int) int {
	half := visible / 2
	if half < 1 {
		half = 1
	}
	switch m {
	case MoveUp:
		return -1
	case MoveDown:
		return 1
	case MovePageUp:
		return -visible
	case MovePageDown:
		return visible
	case MoveHalfPageUp:
		return -half
	case MoveHalfPageDown:
		return half
	case MoveTop:
		return deltaTop
	case MoveBottom:
		return deltaBottom
	}
	return 0
}

// clampCursor applies a delta to the cursor and clamps it to [0, max].
func clampCursor(current, delta, max int) int {
	if delta == deltaTop {
		return 0
	}
	if delta == deltaBottom {
		return max
	}

	next := current + delta
	if next < 0 {
		return 0
	}
	if next > max {
		return max
	}
	return next
}
