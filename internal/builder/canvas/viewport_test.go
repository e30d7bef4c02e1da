package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewport_WheelNeedsModifier(t *testing.T) {
	v := NewViewport()
	require.False(t, v.Wheel(120, false))
	require.Equal(t, 1.0, v.Zoom())

	require.False(t, v.Wheel(0, true))
	require.Equal(t, 1.0, v.Zoom())
}

func TestViewport_WheelSteps(t *testing.T) {
	v := NewViewport()
	require.True(t, v.Wheel(120, true))
	require.InDelta(t, 0.9, v.Zoom(), 1e-12)

	v = NewViewport()
	require.True(t, v.Wheel(-3, true))
	require.InDelta(t, 1.1, v.Zoom(), 1e-12)
}

func TestViewport_RepeatedZoomOutStopsAtMinimum(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 30; i++ {
		require.True(t, v.Wheel(1, true))
		require.GreaterOrEqual(t, v.Zoom(), MinZoom)
	}
	require.Equal(t, MinZoom, v.Zoom())

	// further ticks keep it at the bound
	v.Wheel(1, true)
	require.Equal(t, MinZoom, v.Zoom())
}

func TestViewport_ZoomOutStepIsMultiplicative(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 10; i++ {
		v.Wheel(1, true)
	}
	require.InDelta(t, math.Pow(ZoomOutStep, 10), v.Zoom(), 1e-12)
}

func TestViewport_ZoomInClamps(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 20; i++ {
		v.ZoomIn()
	}
	require.Equal(t, MaxZoom, v.Zoom())

	v.SetZoom(0.01)
	require.Equal(t, MinZoom, v.Zoom())
}

func TestViewport_PanOnlyWithSecondaryButton(t *testing.T) {
	v := NewViewport()
	require.False(t, v.PointerDown(0))
	require.False(t, v.PanBy(10, 10))

	require.True(t, v.PointerDown(ButtonSecondary))
	require.True(t, v.PanBy(10, -5))
	require.True(t, v.PanBy(-30, 0))
	x, y := v.Pan()
	require.Equal(t, -20.0, x)
	require.Equal(t, -5.0, y)

	v.PointerUp()
	require.False(t, v.Panning())
	require.False(t, v.PanBy(100, 100))
}

func TestViewport_Coordinates(t *testing.T) {
	v := NewViewport()
	v.SetZoom(2)
	v.PointerDown(ButtonSecondary)
	v.PanBy(10, 20)

	sx, sy := v.ToScreen(5, 5)
	require.Equal(t, 20.0, sx)
	require.Equal(t, 30.0, sy)

	cx, cy := v.ToCanvas(sx, sy)
	require.Equal(t, 5.0, cx)
	require.Equal(t, 5.0, cy)

	dx, dy := v.ScaleDelta(8, -4)
	require.Equal(t, 4.0, dx)
	require.Equal(t, -2.0, dy)

	require.Equal(t, "translate(10px, 20px) scale(2)", v.Transform())
}
