package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"invite-builder/internal/builder/canvas"
	"invite-builder/internal/builder/elements"
	"invite-builder/internal/builder/mapper"
	"invite-builder/internal/builder/models"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	legacy := models.LegacyDocument{
		Name: "Rina & Adi",
		PageStructure: []models.ComponentDescriptor{
			{ID: "cover", Type: "CoverSection", Order: 1},
			{ID: "quote", Type: "QuoteSection", Order: 2},
		},
		ComponentData: map[string]models.ComponentData{
			"quote": {"quoteText": "Love is patient", "source": "Paul"},
		},
	}
	doc := mapper.New().Convert(legacy)
	return New(doc, &legacy)
}

func TestSession_Open(t *testing.T) {
	s := newSession(t)
	require.Len(t, s.Elements(), 2)
	require.Equal(t, mapper.CanvasWidth, s.CanvasWidth())
	require.Equal(t, mapper.MinCanvasHeight, s.CanvasHeight())
	require.False(t, s.Dirty())

	snap := s.Snapshot()
	require.Equal(t, models.ElementDocumentVersion, snap.Version)
	require.Len(t, snap.Elements, 2)
	require.Equal(t, "Rina & Adi", snap.Header.Name)

	reopened := New(snap, nil)
	require.Equal(t, "Rina & Adi", reopened.Base().Name)
}

func TestSession_DefaultsForEmptyDocument(t *testing.T) {
	s := New(models.ElementDocument{}, nil)
	require.Equal(t, mapper.CanvasWidth, s.CanvasWidth())
	require.Equal(t, mapper.MinCanvasHeight, s.CanvasHeight())
	require.Empty(t, s.Elements())
	require.Nil(t, s.Snapshot().Header)
}

func TestSession_AddElement(t *testing.T) {
	s := newSession(t)
	el := s.AddElement(models.TypeText, 300, 1500, elements.WithContent(models.TextContent{Text: "hi"}))

	require.NotEmpty(t, el.ID)
	require.Equal(t, 2, el.ZIndex)
	require.Equal(t, 175.0, el.X)
	require.Equal(t, 1500.0, el.Y)
	require.Equal(t, models.TextContent{Text: "hi"}, el.Content)
	require.True(t, s.Dirty())
	require.Equal(t, 1500+elements.DefaultHeight+mapper.BottomMargin, s.CanvasHeight())

	img := s.AddElement(models.TypeImage, 0, 0)
	require.True(t, img.Locked)
	require.Equal(t, 3, img.ZIndex)
}

func TestSession_UpdateElement(t *testing.T) {
	s := newSession(t)

	el, err := s.UpdateElement("quote", models.Patch{Rotation: models.Float(-90)})
	require.NoError(t, err)
	require.Equal(t, 270.0, el.Rotation)

	el, err = s.UpdateElement("quote", models.Patch{Rotation: models.Float(725)})
	require.NoError(t, err)
	require.Equal(t, 5.0, el.Rotation)

	el, err = s.UpdateElement("quote", models.Patch{X: models.Float(300), Width: models.Float(0)})
	require.NoError(t, err)
	require.Equal(t, canvas.MinSize, el.Width)
	require.Equal(t, 300.0, el.X)

	el, err = s.UpdateElement("quote", models.Patch{Width: models.Float(200)})
	require.NoError(t, err)
	require.Equal(t, 175.0, el.X)

	el, err = s.UpdateElement("quote", models.Patch{Styles: models.Styles{"color": "#333"}})
	require.NoError(t, err)
	require.Equal(t, models.Styles{"color": "#333"}, el.Styles)
	require.Equal(t, models.QuoteContent{Quote: "Love is patient", Author: "Paul"}, el.Content)

	_, err = s.UpdateElement("missing", models.Patch{X: models.Float(1)})
	require.ErrorIs(t, err, ErrElementNotFound)
}

func TestSession_UpdateResyncsSelection(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Select("quote"))

	_, err := s.UpdateElement("quote", models.Patch{X: models.Float(10), Y: models.Float(900)})
	require.NoError(t, err)

	sel := s.Selection()
	require.Equal(t, "quote", sel.ID)
	require.Equal(t, 10.0, sel.Frame.X)
	require.Equal(t, 900.0, sel.Frame.Y)

	require.NoError(t, s.BeginGesture(canvas.Drag))
	s.Drag(20, 905)
	el, g, ok := s.EndGesture()
	require.True(t, ok)
	require.Equal(t, canvas.Drag, g)
	require.Equal(t, 20.0, el.X)
	require.Equal(t, 905.0, el.Y)
}

func TestSession_DeleteElement(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Select("cover"))
	require.NoError(t, s.DeleteElement("cover"))

	require.Len(t, s.Elements(), 1)
	require.Equal(t, "idle", s.Selection().State)
	require.ErrorIs(t, s.DeleteElement("cover"), ErrElementNotFound)
	require.ErrorIs(t, s.Select("cover"), ErrElementNotFound)
}

func TestSession_GestureCommit(t *testing.T) {
	s := newSession(t)
	_, err := s.UpdateElement("quote", models.Patch{Width: models.Float(340)})
	require.NoError(t, err)
	s.MarkSaved()

	require.ErrorIs(t, s.BeginGesture(canvas.Drag), canvas.ErrNothingSelected)
	require.NoError(t, s.Select("quote"))
	require.NoError(t, s.BeginGesture(canvas.Drag))

	f := s.Drag(100, 2000)
	require.Equal(t, 35.0, f.X)
	require.Equal(t, "manipulating", s.Selection().State)
	require.Equal(t, "drag", s.Selection().Gesture)

	// the model only changes on release
	before, _ := s.Element("quote")
	require.NotEqual(t, 35.0, before.X)
	require.False(t, s.Dirty())

	el, _, ok := s.EndGesture()
	require.True(t, ok)
	require.Equal(t, 35.0, el.X)
	require.Equal(t, 2000.0, el.Y)
	require.True(t, s.Dirty())
	require.Equal(t, 2000+el.Height+mapper.BottomMargin, s.CanvasHeight())

	_, _, ok = s.EndGesture()
	require.False(t, ok)
}

func TestSession_SelectOtherDropsGesture(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Select("quote"))
	require.NoError(t, s.BeginGesture(canvas.Rotate))
	s.Rotate(45)

	require.NoError(t, s.Select("cover"))
	_, _, ok := s.EndGesture()
	require.False(t, ok)

	quote, _ := s.Element("quote")
	require.Equal(t, 0.0, quote.Rotation)
}

func TestSession_Viewport(t *testing.T) {
	s := newSession(t)
	require.True(t, s.Wheel(100, true))
	require.False(t, s.Wheel(100, false))
	require.False(t, s.PointerDown(0))
	require.True(t, s.PointerDown(canvas.ButtonSecondary))
	require.True(t, s.PointerMove(15, 25))
	s.PointerUp()

	view := s.Viewport()
	require.InDelta(t, 0.9, view.Zoom, 1e-12)
	require.Equal(t, 15.0, view.PanX)
	require.Equal(t, 25.0, view.PanY)
	require.False(t, view.Panning)

	// element geometry is untouched by the view
	before := s.Elements()
	for i := 0; i < 30; i++ {
		s.Wheel(-1, true)
	}
	require.Equal(t, before, s.Elements())
	require.Equal(t, canvas.MaxZoom, s.Viewport().Zoom)
}

func TestSession_OversizedElementFitsOnOpen(t *testing.T) {
	legacy := models.LegacyDocument{
		Name:          "Wide",
		PageStructure: []models.ComponentDescriptor{{ID: "photo", Type: "ImageBlock", Order: 1}},
		ComponentData: map[string]models.ComponentData{"photo": {"width": 500.0, "height": 300.0}},
	}
	doc := mapper.New().Convert(legacy)
	require.Equal(t, 500.0, doc.Elements[0].Width)

	s := New(doc, &legacy)
	photo, ok := s.Element("photo")
	require.True(t, ok)
	require.Equal(t, 0.0, photo.X)
	require.Equal(t, s.CanvasWidth(), photo.Width)
	require.True(t, s.Dirty())

	require.NoError(t, s.Select("photo"))
	require.NoError(t, s.BeginGesture(canvas.Drag))
	s.Drag(100, 80)
	el, _, ok := s.EndGesture()
	require.True(t, ok)
	require.GreaterOrEqual(t, el.X, 0.0)
	require.LessOrEqual(t, el.X+el.Width, s.CanvasWidth())
	require.Equal(t, 80.0, el.Y)
}

func TestSession_ScreenSpace(t *testing.T) {
	s := newSession(t)
	require.True(t, s.PointerDown(canvas.ButtonSecondary))
	require.True(t, s.PointerMove(10, 20))
	s.PointerUp()
	require.True(t, s.Wheel(-1, true))
	zoom := s.Viewport().Zoom
	require.InDelta(t, 1.1, zoom, 1e-12)

	x, y := s.ScreenPoint(10+50*zoom, 20+80*zoom)
	require.InDelta(t, 50.0, x, 1e-9)
	require.InDelta(t, 80.0, y, 1e-9)

	dx, dy := s.ScreenDelta(11, -22)
	require.InDelta(t, 10.0, dx, 1e-9)
	require.InDelta(t, -20.0, dy, 1e-9)

	require.Nil(t, s.Selection().Screen)
	require.NoError(t, s.Select("quote"))
	sel := s.Selection()
	require.NotNil(t, sel.Screen)
	require.InDelta(t, 10+sel.Frame.X*zoom, sel.Screen.X, 1e-9)
	require.InDelta(t, 20+sel.Frame.Y*zoom, sel.Screen.Y, 1e-9)
	require.InDelta(t, sel.Frame.Width*zoom, sel.Screen.Width, 1e-9)
	require.InDelta(t, sel.Frame.Height*zoom, sel.Screen.Height, 1e-9)
}

func TestSession_TypeChangeConvertsContent(t *testing.T) {
	s := newSession(t)
	cover := s.AddElement(models.TypeCover, 0, 0,
		elements.WithContent(models.CoverContent{Title: "Hi", Subtitle: "x", Date: "2026-06-01"}))

	hero := models.TypeHero
	el, err := s.UpdateElement(cover.ID, models.Patch{Type: &hero})
	require.NoError(t, err)
	require.Equal(t, models.TypeHero, el.Type)
	require.Equal(t, models.HeroContent{Title: "Hi", Subtitle: "x"}, el.Content)

	text := s.AddElement(models.TypeText, 0, 0, elements.WithContent(models.TextContent{Text: "hello"}))
	quote := models.TypeQuote
	el, err = s.UpdateElement(text.ID, models.Patch{Type: &quote})
	require.NoError(t, err)
	require.Equal(t, models.QuoteContent{}, el.Content)

	// explicit content in the same patch wins
	el, err = s.UpdateElement(text.ID, models.Patch{Type: &hero, Content: models.HeroContent{Title: "Big"}})
	require.NoError(t, err)
	require.Equal(t, models.HeroContent{Title: "Big"}, el.Content)
}

func TestSession_Export(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	legacy := &models.LegacyDocument{Name: "Party", Status: "published"}
	doc := models.ElementDocument{
		CanvasWidth: 375,
		Elements: []models.Element{
			{ID: "b", Type: models.TypeText, Y: 200, Width: 10, Height: 10, Content: models.TextContent{Text: "b"}},
			{ID: "a", Type: models.TypeText, Y: 100, Width: 10, Height: 10},
		},
	}

	s := New(doc, legacy, WithRenderer(mapper.NewRenderer(mapper.WithClock(clock))))
	out := s.Export()

	require.Equal(t, "Party", out.Name)
	require.Equal(t, "published", out.Status)
	require.Equal(t, "2026-01-01T00:00:00Z", out.UpdatedAt)
	require.Equal(t, "a", out.PageStructure[0].ID)
	require.Equal(t, "b", out.ComponentData["b"]["text"])
}
