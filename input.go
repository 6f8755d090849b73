package nodenet

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// defaultDragTolerance is the pick radius around a node, in CSS pixels.
const defaultDragTolerance = 25.0

// syntheticPointerEvent is one injected pointer event, consumed on the next
// Process call. Used for scripted input in tests and demos.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InputController translates pointer and touch input into node drag state.
// State machine: Idle → Dragging → Idle. Only one pointer/node pair is
// tracked at a time; touches beyond the first are ignored.
type InputController struct {
	sim       *Simulation
	tolerance float64

	// Dragging state. dragged is -1 while idle.
	dragged int
	offset  Vec2

	// hover is a cursor hint only; no node state is mutated while idle.
	hover bool

	injectQueue []syntheticPointerEvent

	// Real-input bookkeeping for Process.
	touchActive bool
	touchID     ebiten.TouchID
	touchBuf    []ebiten.TouchID
}

// NewInputController creates a controller over sim's nodes. tolerance <= 0
// uses the default pick radius.
func NewInputController(sim *Simulation, tolerance float64) *InputController {
	if tolerance <= 0 {
		tolerance = defaultDragTolerance
	}
	return &InputController{sim: sim, tolerance: tolerance, dragged: -1}
}

// DraggedIndex returns the index of the node being dragged, or -1.
func (c *InputController) DraggedIndex() int {
	return c.dragged
}

// Hovering reports whether the idle pointer is over a node (cursor hint).
func (c *InputController) Hovering() bool {
	return c.hover
}

// pickNode returns the index of the first node in list order within the
// tolerance radius of (x, y), or -1. First match wins even when a closer
// node exists later in the list; overlapping-node behavior is part of the
// observable contract.
func (c *InputController) pickNode(x, y float64) int {
	nodes := c.sim.Nodes()
	tol := c.tolerance
	for i := range nodes {
		dx := x - nodes[i].Pos.X
		dy := y - nodes[i].Pos.Y
		if dx*dx+dy*dy <= tol*tol {
			return i
		}
	}
	return -1
}

// Press handles a pointer-down at canvas coordinates (x, y). If a node is in
// range it enters the Dragging state: the node's velocity is saved and
// pinned to zero until release. Returns true when a drag started (hosts use
// this to suppress default actions like text selection).
func (c *InputController) Press(x, y float64) bool {
	if c.dragged >= 0 {
		return false // single-pointer model: one drag at a time
	}
	i := c.pickNode(x, y)
	if i < 0 {
		return false
	}
	n := c.sim.NodeAt(i)
	c.dragged = i
	c.offset = Vec2{X: x - n.Pos.X, Y: y - n.Pos.Y}
	n.savedVel = n.Vel
	n.hasSavedVel = true
	n.Vel = Vec2{}
	n.dragging = true
	return true
}

// Move handles pointer movement. While dragging it repositions the held node
// to pointer minus the press offset, clamped to bounds; velocity is not
// touched. While idle it only refreshes the hover hint.
func (c *InputController) Move(x, y float64, bounds Vec2) {
	if c.dragged < 0 {
		c.hover = c.pickNode(x, y) >= 0
		return
	}
	n := c.sim.NodeAt(c.dragged)
	n.Pos.X = clamp(x-c.offset.X, 0, bounds.X)
	n.Pos.Y = clamp(y-c.offset.Y, 0, bounds.Y)
}

// Release ends a drag. The node's saved velocity is restored when nonzero;
// a node grabbed at rest gets a fresh small random velocity so it never
// stays permanently motionless. No-op while idle.
func (c *InputController) Release() {
	if c.dragged < 0 {
		return
	}
	n := c.sim.NodeAt(c.dragged)
	if n.hasSavedVel && (n.savedVel.X != 0 || n.savedVel.Y != 0) {
		n.Vel = n.savedVel
	} else {
		n.Vel = Vec2{
			X: (rand.Float64()*2 - 1) * releaseVelocity,
			Y: (rand.Float64()*2 - 1) * releaseVelocity,
		}
	}
	n.dragging = false
	n.savedVel = Vec2{}
	n.hasSavedVel = false
	c.dragged = -1
}

// InjectPress queues a synthetic pointer press, consumed by the next Process.
func (c *InputController) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a synthetic move with the button held down.
func (c *InputController) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a synthetic pointer release.
func (c *InputController) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// Process polls real mouse and touch input (or one injected event) and feeds
// it through the state machine. bounds is the canvas size in CSS pixels;
// scale converts device-pixel cursor coordinates back to CSS pixels.
// Called once per host tick, independent of the frame-skip policy, so drags
// stay responsive while rendering is throttled.
func (c *InputController) Process(bounds Vec2, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if c.processInjected(bounds) {
		return
	}
	c.processMouse(bounds, scale)
	c.processTouch(bounds, scale)
	c.updateCursor()
}

// processInjected pops one queued synthetic event. Returns true if an event
// was consumed; real input is skipped for that tick.
func (c *InputController) processInjected(bounds Vec2) bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch {
	case evt.pressed && c.dragged < 0:
		if !c.Press(evt.x, evt.y) {
			c.Move(evt.x, evt.y, bounds)
		}
	case evt.pressed:
		c.Move(evt.x, evt.y, bounds)
	default:
		c.Move(evt.x, evt.y, bounds)
		c.Release()
	}
	return true
}

func (c *InputController) processMouse(bounds Vec2, scale float64) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx)/scale, float64(my)/scale

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.Press(x, y)
		return
	}
	if c.dragged >= 0 && !c.touchActive {
		// Leaving the canvas releases the drag, matching mouse-leave.
		if x < 0 || y < 0 || x > bounds.X || y > bounds.Y {
			c.Release()
			return
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			c.Release()
			return
		}
		c.Move(x, y, bounds)
		return
	}
	c.Move(x, y, bounds)
}

func (c *InputController) processTouch(bounds Vec2, scale float64) {
	if c.touchActive {
		if inpututil.IsTouchJustReleased(c.touchID) {
			c.touchActive = false
			c.Release()
			return
		}
		tx, ty := ebiten.TouchPosition(c.touchID)
		c.Move(float64(tx)/scale, float64(ty)/scale, bounds)
		return
	}

	c.touchBuf = ebiten.AppendTouchIDs(c.touchBuf[:0])
	if len(c.touchBuf) == 0 {
		return // zero-length touch list is a no-op, not an error
	}
	// Single-touch model: only the first touch point is tracked.
	id := c.touchBuf[0]
	tx, ty := ebiten.TouchPosition(id)
	if c.Press(float64(tx)/scale, float64(ty)/scale) {
		c.touchActive = true
		c.touchID = id
	}
}

// updateCursor applies the hover hint to the system cursor.
func (c *InputController) updateCursor() {
	if c.dragged >= 0 || c.hover {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Detach force-releases any in-progress drag. Called on teardown; safe to
// call repeatedly.
func (c *InputController) Detach() {
	c.Release()
	c.hover = false
}
