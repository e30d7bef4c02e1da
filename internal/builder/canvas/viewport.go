package canvas

import (
	"math"
	"strconv"
)

// ============================================================
// Viewport (pan/zoom)
// ============================================================

const (
	MinZoom = 0.25
	MaxZoom = 2.0

	ZoomOutStep = 0.9
	ZoomInStep  = 1.1

	// ButtonSecondary is the pointer button that pans the canvas.
	ButtonSecondary = 2
)

// Viewport is the screen transform of the whole canvas:
// translate(pan) then scale(zoom), origin at the top-left corner.
// It never touches element geometry.
type Viewport struct {
	zoom    float64
	panX    float64
	panY    float64
	panning bool
}

func NewViewport() *Viewport {
	return &Viewport{zoom: 1}
}

func (v *Viewport) Zoom() float64 { return v.zoom }
func (v *Viewport) Pan() (float64, float64) { return v.panX, v.panY }
func (v *Viewport) Panning() bool { return v.panning }

// SetZoom clamps z into [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	v.zoom = math.Min(math.Max(z, MinZoom), MaxZoom)
}

func (v *Viewport) ZoomIn()  { v.SetZoom(v.zoom * ZoomInStep) }
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom * ZoomOutStep) }

// Wheel handles one wheel tick. Without the modifier the wheel scrolls the
// page and the zoom is left alone; reports whether the zoom was handled.
func (v *Viewport) Wheel(deltaY float64, modifier bool) bool {
	if !modifier || deltaY == 0 {
		return false
	}
	if deltaY > 0 {
		v.ZoomOut()
	} else {
		v.ZoomIn()
	}
	return true
}

// PointerDown starts panning when button is the secondary one.
func (v *Viewport) PointerDown(button int) bool {
	if button != ButtonSecondary {
		return false
	}
	v.panning = true
	return true
}

// PanBy shifts the pan offset by a screen-space delta while panning.
func (v *Viewport) PanBy(dx, dy float64) bool {
	if !v.panning {
		return false
	}
	v.panX += dx
	v.panY += dy
	return true
}

func (v *Viewport) PointerUp() { v.panning = false }

// ToCanvas converts a screen point into canvas-space.
func (v *Viewport) ToCanvas(sx, sy float64) (float64, float64) {
	return (sx - v.panX) / v.zoom, (sy - v.panY) / v.zoom
}

// ToScreen converts a canvas-space point into screen coordinates.
func (v *Viewport) ToScreen(cx, cy float64) (float64, float64) {
	return cx*v.zoom + v.panX, cy*v.zoom + v.panY
}

// ScaleDelta converts a screen-space pointer delta into canvas units.
func (v *Viewport) ScaleDelta(dx, dy float64) (float64, float64) {
	return dx / v.zoom, dy / v.zoom
}

// Transform renders the CSS transform of the canvas layer.
func (v *Viewport) Transform() string {
	return "translate(" + formatFloat(v.panX) + "px, " + formatFloat(v.panY) + "px) scale(" + formatFloat(v.zoom) + ")"
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
