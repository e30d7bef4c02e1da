// Package editor holds one editing session: the element collection of a
// project together with its canvas, manipulation engine and viewport. All
// writes to the collection go through the elements package.
package editor

import (
	"errors"
	"math"

	"invite-builder/internal/builder/canvas"
	"invite-builder/internal/builder/elements"
	"invite-builder/internal/builder/mapper"
	"invite-builder/internal/builder/models"
)

var ErrElementNotFound = errors.New("element not found")

// ViewState is the serializable viewport.
type ViewState struct {
	Zoom      float64 `json:"zoom"`
	PanX      float64 `json:"panX"`
	PanY      float64 `json:"panY"`
	Panning   bool    `json:"panning"`
	Transform string  `json:"transform"`
}

// Selection describes the engine state for clients.
type Selection struct {
	ID      string        `json:"id,omitempty"`
	State   string        `json:"state"`
	Gesture string        `json:"gesture,omitempty"`
	Frame   *canvas.Frame `json:"frame,omitempty"`
	// Screen is Frame under the current pan and zoom, for the handle overlay.
	Screen  *canvas.Frame `json:"screen,omitempty"`
}

type Session struct {
	elements     []models.Element
	canvasWidth  float64
	canvasHeight float64
	base         *models.LegacyDocument

	engine   *canvas.Engine
	viewport *canvas.Viewport
	renderer *mapper.Renderer

	dirty bool
}

type Option func(*sessionOptions)

type sessionOptions struct {
	target   canvas.Target
	renderer *mapper.Renderer
}

// WithTarget forwards every corrected gesture frame to t.
func WithTarget(t canvas.Target) Option {
	return func(o *sessionOptions) { o.target = t }
}

func WithRenderer(r *mapper.Renderer) Option {
	return func(o *sessionOptions) { o.renderer = r }
}

// New opens a session over doc. base carries the legacy header fields the
// element model does not own; when nil, the document's own header is used.
// Loaded elements are fitted into the canvas width; a session that had to
// fit anything starts dirty.
func New(doc models.ElementDocument, base *models.LegacyDocument, opts ...Option) *Session {
	if base == nil && doc.Header != nil {
		base = doc.Header.Legacy()
	}

	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = mapper.NewRenderer()
	}

	width := doc.CanvasWidth
	if width <= 0 {
		width = mapper.CanvasWidth
	}

	var engineOpts []canvas.Option
	if o.target != nil {
		engineOpts = append(engineOpts, canvas.WithTarget(o.target))
	}

	s := &Session{
		elements:     append([]models.Element(nil), doc.Elements...),
		canvasWidth:  width,
		canvasHeight: math.Max(doc.CanvasHeight, mapper.MinCanvasHeight),
		base:         base,
		engine:       canvas.NewEngine(width, engineOpts...),
		viewport:     canvas.NewViewport(),
		renderer:     o.renderer,
	}
	for i, el := range s.elements {
		fitted := s.fit(el)
		if fitted.X != el.X || fitted.Width != el.Width || fitted.Height != el.Height {
			s.elements[i] = fitted
			s.dirty = true
		}
	}
	s.grow()
	return s
}

// ============================================================
// Document
// ============================================================

// Elements returns a copy of the collection.
func (s *Session) Elements() []models.Element {
	return append([]models.Element(nil), s.elements...)
}

func (s *Session) Element(id string) (models.Element, bool) {
	return elements.Find(s.elements, id)
}

// Snapshot returns the element document as it would be persisted.
func (s *Session) Snapshot() models.ElementDocument {
	doc := models.ElementDocument{
		Version:      models.ElementDocumentVersion,
		CanvasWidth:  s.canvasWidth,
		CanvasHeight: s.canvasHeight,
		Elements:     s.Elements(),
	}
	if s.base != nil {
		h := s.base.Header()
		doc.Header = &h
	}
	return doc
}

// Export converts the collection back into a legacy document.
func (s *Session) Export() models.LegacyDocument {
	return s.renderer.Render(s.elements, s.base)
}

func (s *Session) Base() *models.LegacyDocument { return s.base }

func (s *Session) CanvasWidth() float64 { return s.canvasWidth }
func (s *Session) CanvasHeight() float64 { return s.canvasHeight }

// Dirty reports unsaved changes since the session opened or MarkSaved.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) MarkSaved() { s.dirty = false }

// AddElement creates an element on top of the stack. x is kept inside the
// canvas.
func (s *Session) AddElement(t models.ElementType, x, y float64, opts ...elements.Option) models.Element {
	opts = append([]elements.Option{elements.WithZIndex(elements.MaxZIndex(s.elements) + 1)}, opts...)
	el := elements.Create(t, x, y, opts...)
	el = s.fit(el)

	s.elements = append(s.elements, el)
	s.dirty = true
	s.grow()
	return el
}

// UpdateElement applies a properties-panel edit. Geometry edits are kept
// valid: rotation is normalized to [0, 360), sizes stay at least MinSize and
// the box stays inside the canvas horizontally. A type change without new
// content carries the old content over into the new type's variant. A
// selected element's frame is resynchronized.
func (s *Session) UpdateElement(id string, p models.Patch) (models.Element, error) {
	current, ok := elements.Find(s.elements, id)
	if !ok {
		return models.Element{}, ErrElementNotFound
	}
	if p.Empty() {
		return current, nil
	}

	if p.Rotation != nil {
		p.Rotation = models.Float(normalizeDegrees(*p.Rotation))
	}
	if p.Type != nil && *p.Type != current.Type && p.Content == nil {
		p.Content = models.ConvertContent(current.Content, *p.Type)
	}
	if p.TouchesGeometry() {
		next := s.fit(p.Apply(current))
		p.X, p.Y = models.Float(next.X), models.Float(next.Y)
		p.Width, p.Height = models.Float(next.Width), models.Float(next.Height)
	}

	s.elements = elements.Update(s.elements, id, p)
	s.dirty = true
	s.grow()

	updated, _ := elements.Find(s.elements, id)
	s.engine.Sync(updated)
	return updated, nil
}

// DeleteElement removes id, deselecting it first when selected.
func (s *Session) DeleteElement(id string) error {
	if _, ok := elements.Find(s.elements, id); !ok {
		return ErrElementNotFound
	}
	if s.engine.SelectedID() == id {
		s.engine.Deselect()
	}
	s.elements = elements.Delete(s.elements, id)
	s.dirty = true
	return nil
}

// ============================================================
// Selection & gestures
// ============================================================

func (s *Session) Select(id string) error {
	el, ok := elements.Find(s.elements, id)
	if !ok {
		return ErrElementNotFound
	}
	s.engine.Select(el)
	return nil
}

func (s *Session) Deselect() { s.engine.Deselect() }

func (s *Session) Selection() Selection {
	sel := Selection{ID: s.engine.SelectedID(), State: s.engine.State().String()}
	if s.engine.InGesture() {
		sel.Gesture = s.engine.Gesture().String()
	}
	if s.engine.HasSelection() {
		f := s.engine.Frame()
		sel.Frame = &f

		x, y := s.viewport.ToScreen(f.X, f.Y)
		w, h := f.Width*s.viewport.Zoom(), f.Height*s.viewport.Zoom()
		sel.Screen = &canvas.Frame{X: x, Y: y, Width: w, Height: h, Rotation: f.Rotation}
	}
	return sel
}

func (s *Session) BeginGesture(g canvas.Gesture) error {
	return s.engine.Begin(g)
}

func (s *Session) Drag(left, top float64) canvas.Frame {
	return s.engine.Drag(left, top)
}

func (s *Session) Resize(width, height, dx, dy float64) canvas.Frame {
	return s.engine.Resize(width, height, dx, dy)
}

func (s *Session) Rotate(deg float64) canvas.Frame {
	return s.engine.Rotate(deg)
}

// EndGesture commits the gesture's last clamped frame. ok is false when no
// gesture was running.
func (s *Session) EndGesture() (el models.Element, g canvas.Gesture, ok bool) {
	g = s.engine.Gesture()
	id := s.engine.SelectedID()

	p, ok := s.engine.End()
	if !ok {
		return models.Element{}, canvas.None, false
	}

	s.elements = elements.Update(s.elements, id, p)
	s.dirty = true
	s.grow()

	el, found := elements.Find(s.elements, id)
	if !found {
		return models.Element{}, g, false
	}
	return el, g, true
}

// ============================================================
// Viewport
// ============================================================

func (s *Session) Wheel(deltaY float64, modifier bool) bool {
	return s.viewport.Wheel(deltaY, modifier)
}

func (s *Session) PointerDown(button int) bool {
	return s.viewport.PointerDown(button)
}

func (s *Session) PointerMove(dx, dy float64) bool {
	return s.viewport.PanBy(dx, dy)
}

func (s *Session) PointerUp() { s.viewport.PointerUp() }

// ScreenPoint maps a pointer position into canvas space.
func (s *Session) ScreenPoint(x, y float64) (float64, float64) {
	return s.viewport.ToCanvas(x, y)
}

// ScreenDelta maps a pointer movement or an on-screen size into canvas units.
func (s *Session) ScreenDelta(dx, dy float64) (float64, float64) {
	return s.viewport.ScaleDelta(dx, dy)
}

func (s *Session) Viewport() ViewState {
	x, y := s.viewport.Pan()
	return ViewState{
		Zoom:      s.viewport.Zoom(),
		PanX:      x,
		PanY:      y,
		Panning:   s.viewport.Panning(),
		Transform: s.viewport.Transform(),
	}
}

// ============================================================
// Helpers
// ============================================================

// fit keeps the element's size positive and its box inside the canvas width.
func (s *Session) fit(el models.Element) models.Element {
	el.Width = math.Min(math.Max(el.Width, canvas.MinSize), math.Max(s.canvasWidth, canvas.MinSize))
	el.Height = math.Max(el.Height, canvas.MinSize)
	el.X = math.Max(math.Min(el.X, s.canvasWidth-el.Width), 0)
	return el
}

// grow extends the canvas height to fit the lowest element.
func (s *Session) grow() {
	if bottom := elements.Bottom(s.elements) + mapper.BottomMargin; bottom > s.canvasHeight {
		s.canvasHeight = bottom
	}
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
