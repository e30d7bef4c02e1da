package mapper

import (
	"math"
	"sort"

	"invite-builder/internal/builder/models"
)

// ============================================================
// Converter (legacy → elements)
// ============================================================

const (
	CanvasWidth     = 375.0
	TopMargin       = 50.0
	Spacing         = 20.0
	BottomMargin    = 100.0
	MinCanvasHeight = 1200.0
)

type Converter struct {
	canvasWidth float64
	onDuplicate func(id string)
}

type Option func(*Converter)

// WithCanvasWidth overrides the fixed canvas width used for centering.
func WithCanvasWidth(w float64) Option {
	return func(c *Converter) {
		if w > 0 {
			c.canvasWidth = w
		}
	}
}

// WithDuplicateHook is called for every descriptor skipped because its id
// was already placed.
func WithDuplicateHook(fn func(id string)) Option {
	return func(c *Converter) { c.onDuplicate = fn }
}

func New(opts ...Option) *Converter {
	c := &Converter{canvasWidth: CanvasWidth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert legacy document → element document.
//
// Components without explicit coordinates are stacked top to bottom in
// document order, centered horizontally; explicitly placed ones keep their
// position and do not move the flow cursor. Descriptor ids are unique in the
// result: the first descriptor in order wins.
func (c *Converter) Convert(doc models.LegacyDocument) models.ElementDocument {
	structure := make([]models.ComponentDescriptor, len(doc.PageStructure))
	copy(structure, doc.PageStructure)
	sort.SliceStable(structure, func(i, j int) bool {
		return structure[i].Order < structure[j].Order
	})

	cursorY := TopMargin
	seen := make(map[string]bool, len(structure))
	elements := make([]models.Element, 0, len(structure))

	for _, desc := range structure {
		if seen[desc.ID] {
			if c.onDuplicate != nil {
				c.onDuplicate(desc.ID)
			}
			continue
		}
		seen[desc.ID] = true

		bag := doc.ComponentData[desc.ID]
		if bag == nil {
			bag = models.ComponentData{}
		}

		elemType := ElementTypeFor(desc.Type)
		width, height := c.size(elemType, bag)

		x, ok := finite(bag, "x")
		if !ok {
			x = (c.canvasWidth - width) / 2
		}

		y, ok := finite(bag, "y")
		if !ok {
			y = cursorY
			cursorY += height + Spacing
		}

		rotation, _ := finite(bag, "rotation")

		elements = append(elements, models.Element{
			ID:       desc.ID,
			Type:     elemType,
			X:        x,
			Y:        y,
			Width:    width,
			Height:   height,
			Rotation: rotation,
			Locked:   lockedTypes[elemType],
			ZIndex:   len(elements),
			Styles:   extractStyles(bag),
			Content:  extractContent(elemType, bag),
		})
	}

	return models.ElementDocument{
		Version:      models.ElementDocumentVersion,
		CanvasWidth:  c.canvasWidth,
		CanvasHeight: math.Max(cursorY+BottomMargin, MinCanvasHeight),
		Elements:     elements,
	}
}

// size: explicit positive width/height win, the default table fills the rest.
func (c *Converter) size(t models.ElementType, bag models.ComponentData) (float64, float64) {
	width, height := DefaultSize(t)
	if w, ok := finite(bag, "width"); ok && w > 0 {
		width = w
	}
	if h, ok := finite(bag, "height"); ok && h > 0 {
		height = h
	}
	return width, height
}

func finite(bag models.ComponentData, key string) (float64, bool) {
	v, ok := number(bag, key)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
