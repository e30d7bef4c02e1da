package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Partial updates
// ============================================================

// Patch is a shallow partial of Element; nil fields are left untouched.
// Styles and Content replace the whole value when set.
type Patch struct {
	Type     *ElementType
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	Locked   *bool
	ZIndex   *int
	Styles   Styles
	Content  Content
}

// Float returns a pointer to v, for building patches inline.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Type == nil && p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Rotation == nil && p.Locked == nil && p.ZIndex == nil && p.Styles == nil && p.Content == nil
}

// TouchesGeometry reports whether the patch moves, resizes or rotates.
func (p Patch) TouchesGeometry() bool {
	return p.X != nil || p.Y != nil || p.Width != nil || p.Height != nil || p.Rotation != nil
}

// Apply returns e with the patch merged in.
func (p Patch) Apply(e Element) Element {
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Height != nil {
		e.Height = *p.Height
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.Locked != nil {
		e.Locked = *p.Locked
	}
	if p.ZIndex != nil {
		e.ZIndex = *p.ZIndex
	}
	if p.Styles != nil {
		e.Styles = p.Styles
	}
	if p.Content != nil {
		e.Content = p.Content
	}
	return e
}

// Merge returns {...p, ...next}: fields set in next win.
func (p Patch) Merge(next Patch) Patch {
	out := p
	if next.Type != nil {
		out.Type = next.Type
	}
	if next.X != nil {
		out.X = next.X
	}
	if next.Y != nil {
		out.Y = next.Y
	}
	if next.Width != nil {
		out.Width = next.Width
	}
	if next.Height != nil {
		out.Height = next.Height
	}
	if next.Rotation != nil {
		out.Rotation = next.Rotation
	}
	if next.Locked != nil {
		out.Locked = next.Locked
	}
	if next.ZIndex != nil {
		out.ZIndex = next.ZIndex
	}
	if next.Styles != nil {
		out.Styles = next.Styles
	}
	if next.Content != nil {
		out.Content = next.Content
	}
	return out
}

type patchJSON struct {
	Type     *ElementType    `json:"type"`
	X        *float64        `json:"x"`
	Y        *float64        `json:"y"`
	Width    *float64        `json:"width"`
	Height   *float64        `json:"height"`
	Rotation *float64        `json:"rotation"`
	Locked   *bool           `json:"locked"`
	ZIndex   *int            `json:"zIndex"`
	Styles   Styles          `json:"styles"`
	Content  json.RawMessage `json:"content"`
}

// DecodePatch decodes a JSON partial. Content is decoded with the patch's own
// type when it changes the type, otherwise with current.
func DecodePatch(data []byte, current ElementType) (Patch, error) {
	var raw patchJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Patch{}, err
	}

	contentType := current
	if raw.Type != nil {
		if !raw.Type.Valid() {
			return Patch{}, fmt.Errorf("unknown element type %q", *raw.Type)
		}
		contentType = *raw.Type
	}

	content, err := DecodeContent(contentType, raw.Content)
	if err != nil {
		return Patch{}, fmt.Errorf("content: %w", err)
	}

	return Patch{
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
	}, nil
}
