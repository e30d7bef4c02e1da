package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Element types
// ============================================================

type ElementType string

const (
	TypeText      ElementType = "text"
	TypeImage     ElementType = "image"
	TypeShape     ElementType = "shape"
	TypeCountdown ElementType = "countdown"
	TypeCarousel  ElementType = "carousel"
	TypeSection   ElementType = "section"

	// Invitation kinds
	TypeCover             ElementType = "cover"
	TypeHero              ElementType = "hero"
	TypeQuote             ElementType = "quote"
	TypeReligiousGreeting ElementType = "religious-greeting"
	TypeProfile           ElementType = "profile"
	TypeEventDetails      ElementType = "event-details"
	TypePhotoGallery      ElementType = "photo-gallery"
	TypeClosing           ElementType = "closing"
)

var elementTypes = map[ElementType]struct{}{
	TypeText: {}, TypeImage: {}, TypeShape: {}, TypeCountdown: {}, TypeCarousel: {}, TypeSection: {},
	TypeCover: {}, TypeHero: {}, TypeQuote: {}, TypeReligiousGreeting: {}, TypeProfile: {},
	TypeEventDetails: {}, TypePhotoGallery: {}, TypeClosing: {},
}

// Valid reports whether t belongs to the closed set of element kinds.
func (t ElementType) Valid() bool {
	_, ok := elementTypes[t]
	return ok
}

// ============================================================
// Element
// ============================================================

// Element is one positioned unit on the canvas. Geometry is always in
// canvas-space pixels, independent of the editor's pan/zoom.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
	Locked   bool        `json:"locked"`
	ZIndex   int         `json:"zIndex"`
	Styles   Styles      `json:"styles,omitempty"`
	Content  Content     `json:"content,omitempty"`
}

// Right returns the x coordinate of the element's right edge.
func (e Element) Right() float64 { return e.X + e.Width }

// Bottom returns the y coordinate of the element's bottom edge.
func (e Element) Bottom() float64 { return e.Y + e.Height }

type elementJSON struct {
	ID       string          `json:"id"`
	Type     ElementType     `json:"type"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Rotation float64         `json:"rotation"`
	Locked   bool            `json:"locked"`
	ZIndex   int             `json:"zIndex"`
	Styles   Styles          `json:"styles,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// UnmarshalJSON decodes content into the variant matching the element type.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	content, err := DecodeContent(raw.Type, raw.Content)
	if err != nil {
		return fmt.Errorf("element %s content: %w", raw.ID, err)
	}

	*e = Element{
		ID:       raw.ID,
		Type:     raw.Type,
		X:        raw.X,
		Y:        raw.Y,
		Width:    raw.Width,
		Height:   raw.Height,
		Rotation: raw.Rotation,
		Locked:   raw.Locked,
		ZIndex:   raw.ZIndex,
		Styles:   raw.Styles,
		Content:  content,
	}
	return nil
}

// ============================================================
// Styles
// ============================================================

// Styles is an open bag of presentation properties. The core never reads
// it; renderers interpret it per type.
type Styles map[string]any

// StyleKeys is the whitelist copied out of legacy component bags.
var StyleKeys = []string{
	"backgroundColor",
	"color",
	"textColor",
	"fontFamily",
	"fontSize",
	"fontWeight",
	"textAlign",
	"borderRadius",
	"opacity",
}

// IsStyleKey reports whether key belongs to StyleKeys.
func IsStyleKey(key string) bool {
	for _, k := range StyleKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy, nil for an empty bag.
func (s Styles) Clone() Styles {
	if len(s) == 0 {
		return nil
	}
	out := make(Styles, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
