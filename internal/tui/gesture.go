package tui

// gesturePhase tracks one table row's horizontal swipe.
type gesturePhase int

const (
	gestureIdle gesturePhase = iota
	gestureDragging
	gestureOpenLeft  // row slid left, action zone revealed on the right
	gestureOpenRight // row slid right, action zone revealed on the left
	gestureClosed
)

// settleThreshold is the horizontal travel (in cells) needed for a drag to
// settle open instead of snapping shut.
const settleThreshold = 4

// rowGesture is the per-row swipe state machine. It only tracks pointer
// deltas; rendering reads phase and offset, never the raw coordinates.
type rowGesture struct {
	phase  gesturePhase
	startX int
	deltaX int
}

func (g *rowGesture) Phase() gesturePhase { return g.phase }

// Offset is the current horizontal displacement to render the row at.
func (g *rowGesture) Offset() int {
	switch g.phase {
	case gestureDragging:
		return g.deltaX
	case gestureOpenLeft:
		return -settleThreshold
	case gestureOpenRight:
		return settleThreshold
	default:
		return 0
	}
}

// Open reports whether the row's action zone is revealed.
func (g *rowGesture) Open() bool {
	return g.phase == gestureOpenLeft || g.phase == gestureOpenRight
}

// Press begins a drag. Pressing an open row re-arms it so the release can
// settle it closed.
func (g *rowGesture) Press(x int) {
	g.startX = x
	g.deltaX = 0
	g.phase = gestureDragging
}

// Move updates the drag delta; ignored unless dragging.
func (g *rowGesture) Move(x int) {
	if g.phase != gestureDragging {
		return
	}
	g.deltaX = x - g.startX
}

// Release settles the drag: past the threshold it stays open toward the drag
// direction, otherwise it closes.
func (g *rowGesture) Release() {
	if g.phase != gestureDragging {
		return
	}
	switch {
	case g.deltaX <= -settleThreshold:
		g.phase = gestureOpenLeft
	case g.deltaX >= settleThreshold:
		g.phase = gestureOpenRight
	default:
		g.phase = gestureClosed
	}
	g.deltaX = 0
}

// Reset snaps the row shut, dropping any in-flight drag.
func (g *rowGesture) Reset() {
	g.phase = gestureClosed
	g.deltaX = 0
}
