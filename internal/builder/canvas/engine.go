// Package canvas implements direct manipulation of elements (drag, resize,
// rotate) and the pan/zoom viewport. It holds no element collection: the
// caller commits the patches it produces.
package canvas

import (
	"errors"
	"fmt"
	"math"

	"invite-builder/internal/builder/models"
)

// MinSize keeps resized boxes from collapsing to zero.
const MinSize = 1.0

var (
	ErrNothingSelected   = errors.New("no element selected")
	ErrGestureInProgress = errors.New("gesture already in progress")
)

// ============================================================
// States & gestures
// ============================================================

type State int

const (
	Idle State = iota
	Selected
	Manipulating
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case Manipulating:
		return "manipulating"
	default:
		return "idle"
	}
}

type Gesture int

const (
	None Gesture = iota
	Drag
	Resize
	Rotate
)

func (g Gesture) String() string {
	switch g {
	case Drag:
		return "drag"
	case Resize:
		return "resize"
	case Rotate:
		return "rotate"
	default:
		return "none"
	}
}

// ParseGesture maps the wire name of a gesture.
func ParseGesture(s string) (Gesture, error) {
	switch s {
	case "drag":
		return Drag, nil
	case "resize":
		return Resize, nil
	case "rotate":
		return Rotate, nil
	}
	return None, fmt.Errorf("unknown gesture %q", s)
}

// Frame is the visual box of the selected element.
type Frame struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

func frameOf(el models.Element) Frame {
	return Frame{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height, Rotation: el.Rotation}
}

// Target receives every corrected frame so the handle layer's own view of the
// box matches the clamped values.
type Target interface {
	SetFrame(id string, f Frame)
}

// ============================================================
// Engine
// ============================================================

// Engine tracks one selected element and at most one gesture on it. The
// committed model changes only through the patch returned by End.
type Engine struct {
	canvasWidth float64
	target      Target

	state    State
	gesture  Gesture
	selected string

	origin Frame // box at gesture start
	frame  Frame // last clamped frame
	seen   Frame // last committed geometry observed
}

type Option func(*Engine)

func WithTarget(t Target) Option {
	return func(e *Engine) { e.target = t }
}

func NewEngine(canvasWidth float64, opts ...Option) *Engine {
	e := &Engine{canvasWidth: canvasWidth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Gesture() Gesture { return e.gesture }
func (e *Engine) Frame() Frame { return e.frame }
func (e *Engine) CanvasWidth() float64 { return e.canvasWidth }
func (e *Engine) SelectedID() string { return e.selected }
func (e *Engine) HasSelection() bool { return e.state != Idle }
func (e *Engine) InGesture() bool { return e.state == Manipulating }

// Select makes el the selected element. A gesture in progress is dropped
// without producing a patch.
func (e *Engine) Select(el models.Element) {
	e.selected = el.ID
	e.gesture = None
	e.state = Selected
	e.reset(frameOf(el))
}

// Deselect returns to Idle, dropping any gesture in progress.
func (e *Engine) Deselect() {
	e.selected = ""
	e.gesture = None
	e.state = Idle
	e.origin, e.frame, e.seen = Frame{}, Frame{}, Frame{}
}

// Begin starts a gesture on the selected element.
func (e *Engine) Begin(g Gesture) error {
	switch e.state {
	case Idle:
		return ErrNothingSelected
	case Manipulating:
		return ErrGestureInProgress
	}
	if g == None {
		return fmt.Errorf("unknown gesture %q", g)
	}
	e.state = Manipulating
	e.gesture = g
	e.origin = e.frame
	return nil
}

// Drag moves the box to the raw (left, top). x stays inside the canvas,
// y is free because the canvas grows vertically. A box wider than the
// canvas is narrowed to the canvas width. Ignored outside a drag.
func (e *Engine) Drag(left, top float64) Frame {
	if !e.active(Drag) {
		return e.frame
	}
	f := e.frame
	f.Width = math.Min(f.Width, math.Max(e.canvasWidth, MinSize))
	f.X = clamp(left, 0, e.canvasWidth-f.Width)
	f.Y = top
	return e.emit(f)
}

// Resize applies the raw size plus the translation the handle layer computed
// before resizing (dx, dy from the gesture origin). Aspect locking is done by
// the handle layer before these values arrive.
func (e *Engine) Resize(width, height, dx, dy float64) Frame {
	if !e.active(Resize) {
		return e.frame
	}
	f := e.frame
	f.Width = math.Min(math.Max(width, MinSize), math.Max(e.canvasWidth, MinSize))
	f.Height = math.Max(height, MinSize)
	f.X = clamp(e.origin.X+dx, 0, e.canvasWidth-f.Width)
	f.Y = e.origin.Y + dy
	return e.emit(f)
}

// Rotate sets the raw angle in degrees, unclamped.
func (e *Engine) Rotate(deg float64) Frame {
	if !e.active(Rotate) {
		return e.frame
	}
	f := e.frame
	f.Rotation = deg
	return e.emit(f)
}

// End finishes the gesture and returns the patch to commit: the fields the
// gesture owns, taken from the last clamped frame. ok is false when no
// gesture was running.
func (e *Engine) End() (p models.Patch, ok bool) {
	if e.state != Manipulating {
		return models.Patch{}, false
	}

	f := e.frame
	switch e.gesture {
	case Drag:
		p = models.Patch{X: models.Float(f.X), Y: models.Float(f.Y)}
		if f.Width != e.origin.Width {
			p.Width = models.Float(f.Width)
		}
	case Resize:
		p = models.Patch{
			X:      models.Float(f.X),
			Y:      models.Float(f.Y),
			Width:  models.Float(f.Width),
			Height: models.Float(f.Height),
		}
	case Rotate:
		p = models.Patch{Rotation: models.Float(f.Rotation)}
	}

	e.state = Selected
	e.gesture = None
	e.origin = f
	e.seen = f
	return p, true
}

// Sync reconciles with the committed element after a write that did not come
// from the current gesture. When its geometry differs from what the engine
// last saw, the visual frame and gesture origin restart from it.
func (e *Engine) Sync(el models.Element) {
	if e.state == Idle || el.ID != e.selected {
		return
	}
	f := frameOf(el)
	if f == e.seen {
		return
	}
	e.reset(f)
	if e.target != nil {
		e.target.SetFrame(e.selected, f)
	}
}

func (e *Engine) reset(f Frame) {
	e.origin, e.frame, e.seen = f, f, f
}

func (e *Engine) active(g Gesture) bool {
	return e.state == Manipulating && e.gesture == g
}

func (e *Engine) emit(f Frame) Frame {
	e.frame = f
	if e.target != nil {
		e.target.SetFrame(e.selected, f)
	}
	return f
}

// clamp bounds v to [lo, hi]; lo wins when the range is empty, so a box wider
// than the canvas sits at x = 0.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
