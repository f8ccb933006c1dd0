package browse

import "github.com/runger/snapview/internal/restic"

// navFrame is the browsing state saved when descending into a directory,
// restored verbatim on ascent. Frames are only pushed for listings that
// have already been fetched, so popping never needs the backend.
type navFrame struct {
	path    string
	entries []restic.Entry
	cursor  int
	scroll  int
}

// navStack is the navigation cache. It is cleared whenever the active
// snapshot changes.
type navStack struct {
	frames []navFrame
}

func (s *navStack) push(f navFrame) {
	s.frames = append(s.frames, f)
}

// pop removes and returns the most recent frame, if any.
func (s *navStack) pop() (navFrame, bool) {
	if len(s.frames) == 0 {
		return navFrame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

func (s *navStack) clear() {
	s.frames = nil
}

func (s *navStack) depth() int {
	return len(s.frames)
}
