// Package elements holds the pure collection operations of the element
// model. Nothing here mutates its input or returns an error: an absent id
// is a valid no-op.
package elements

import (
	"github.com/google/uuid"

	"invite-builder/internal/builder/models"
)

const (
	DefaultWidth  = 200.0
	DefaultHeight = 100.0
)

// Option overrides a default of Create.
type Option func(*models.Element)

func WithID(id string) Option {
	return func(e *models.Element) { e.ID = id }
}

func WithSize(width, height float64) Option {
	return func(e *models.Element) {
		e.Width = width
		e.Height = height
	}
}

func WithRotation(deg float64) Option {
	return func(e *models.Element) { e.Rotation = deg }
}

func WithLocked(locked bool) Option {
	return func(e *models.Element) { e.Locked = locked }
}

func WithZIndex(z int) Option {
	return func(e *models.Element) { e.ZIndex = z }
}

func WithStyles(s models.Styles) Option {
	return func(e *models.Element) { e.Styles = s }
}

func WithContent(c models.Content) Option {
	return func(e *models.Element) { e.Content = c }
}

// Create builds an element with a fresh id. Images start locked so their
// aspect ratio survives resizing.
func Create(t models.ElementType, x, y float64, opts ...Option) models.Element {
	e := models.Element{
		ID:     uuid.NewString(),
		Type:   t,
		X:      x,
		Y:      y,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Locked: t == models.TypeImage,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Update returns a new collection with the element id shallow-merged with p.
// The input is returned as is when id is absent.
func Update(c []models.Element, id string, p models.Patch) []models.Element {
	idx := indexOf(c, id)
	if idx < 0 {
		return c
	}
	out := make([]models.Element, len(c))
	copy(out, c)
	out[idx] = p.Apply(out[idx])
	return out
}

// Delete returns a new collection without id; the input when id is absent.
func Delete(c []models.Element, id string) []models.Element {
	idx := indexOf(c, id)
	if idx < 0 {
		return c
	}
	out := make([]models.Element, 0, len(c)-1)
	out = append(out, c[:idx]...)
	return append(out, c[idx+1:]...)
}

// Find returns the element with id.
func Find(c []models.Element, id string) (models.Element, bool) {
	if idx := indexOf(c, id); idx >= 0 {
		return c[idx], true
	}
	return models.Element{}, false
}

// MaxZIndex returns the highest zIndex in c, -1 for an empty collection.
func MaxZIndex(c []models.Element) int {
	max := -1
	for _, e := range c {
		if e.ZIndex > max {
			max = e.ZIndex
		}
	}
	return max
}

// Bottom returns the lowest edge (largest y+height) across c.
func Bottom(c []models.Element) float64 {
	var bottom float64
	for _, e := range c {
		if b := e.Bottom(); b > bottom {
			bottom = b
		}
	}
	return bottom
}

func indexOf(c []models.Element, id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}
