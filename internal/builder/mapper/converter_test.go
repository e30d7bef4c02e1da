package mapper

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"invite-builder/internal/builder/models"
)

func loadFixture(t *testing.T) models.LegacyDocument {
	t.Helper()
	data, err := os.ReadFile("testdata/classic-wedding.json")
	require.NoError(t, err)

	var doc models.LegacyDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestConvert_OrderDrivesFlow(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "q", Type: "QuoteSection", Order: 2},
			{ID: "c", Type: "CoverSection", Order: 1},
		},
	}

	out := New().Convert(doc)
	require.Len(t, out.Elements, 2)

	cover, quote := out.Elements[0], out.Elements[1]
	require.Equal(t, "c", cover.ID)
	require.Equal(t, "q", quote.ID)
	require.Less(t, cover.Y, quote.Y)
	require.GreaterOrEqual(t, out.CanvasHeight, MinCanvasHeight)

	require.Equal(t, TopMargin, cover.Y)
	require.Equal(t, TopMargin+667+Spacing, quote.Y)
	require.Equal(t, 0, cover.ZIndex)
	require.Equal(t, 1, quote.ZIndex)
	require.Equal(t, models.TypeCover, cover.Type)
	require.Equal(t, models.TypeQuote, quote.Type)
}

func TestConvert_EmptyDocument(t *testing.T) {
	out := New().Convert(models.LegacyDocument{})
	require.Empty(t, out.Elements)
	require.NotNil(t, out.Elements)
	require.Equal(t, MinCanvasHeight, out.CanvasHeight)
	require.Equal(t, CanvasWidth, out.CanvasWidth)
	require.Equal(t, models.ElementDocumentVersion, out.Version)
}

func TestConvert_DefaultsAndCentering(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "a", Type: "EventDetails", Order: 1},
			{ID: "b", Type: "Mystery", Order: 2},
		},
	}

	out := New().Convert(doc)
	a, b := out.Elements[0], out.Elements[1]

	require.Equal(t, 335.0, a.Width)
	require.Equal(t, 300.0, a.Height)
	require.Equal(t, 20.0, a.X)

	require.Equal(t, models.TypeSection, b.Type)
	require.Equal(t, 200.0, b.Width)
	require.Equal(t, 100.0, b.Height)
	require.Equal(t, 87.5, b.X)
	require.Nil(t, b.Content)
	require.Nil(t, b.Styles)
}

func TestConvert_ExplicitGeometry(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "a", Type: "TextBlock", Order: 1},
			{ID: "b", Type: "TextBlock", Order: 2},
			{ID: "c", Type: "TextBlock", Order: 3},
		},
		ComponentData: map[string]models.ComponentData{
			"b": {"x": 5.0, "y": "900", "width": "120px", "height": 40.0, "rotation": 15.0},
		},
	}

	out := New().Convert(doc)
	a, b, c := out.Elements[0], out.Elements[1], out.Elements[2]

	require.Equal(t, 5.0, b.X)
	require.Equal(t, 900.0, b.Y)
	require.Equal(t, 120.0, b.Width)
	require.Equal(t, 40.0, b.Height)
	require.Equal(t, 15.0, b.Rotation)

	// b is explicitly placed, so c follows a directly.
	require.Equal(t, a.Y+a.Height+Spacing, c.Y)
	require.Equal(t, MinCanvasHeight, out.CanvasHeight)
}

func TestConvert_NonPositiveSizeFallsBack(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{{ID: "a", Type: "ImageBlock", Order: 1}},
		ComponentData: map[string]models.ComponentData{"a": {"width": 0.0, "height": -5.0}},
	}

	e := New().Convert(doc).Elements[0]
	require.Equal(t, 300.0, e.Width)
	require.Equal(t, 200.0, e.Height)
}

func TestConvert_CanvasGrowsWithFlow(t *testing.T) {
	var structure []models.ComponentDescriptor
	for i, id := range []string{"a", "b", "c"} {
		structure = append(structure, models.ComponentDescriptor{ID: id, Type: "CoverSection", Order: i})
	}

	out := New().Convert(models.LegacyDocument{PageStructure: structure})
	cursor := TopMargin + 3*(667+Spacing)
	require.Equal(t, cursor+BottomMargin, out.CanvasHeight)
}

func TestConvert_Locked(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "g", Type: "PhotoGallery", Order: 1},
			{ID: "c", Type: "ImageCarousel", Order: 2},
			{ID: "q", Type: "QuoteSection", Order: 3},
		},
	}
	out := New().Convert(doc)
	require.True(t, out.Elements[0].Locked)
	require.True(t, out.Elements[1].Locked)
	require.False(t, out.Elements[2].Locked)
}

func TestConvert_Deterministic(t *testing.T) {
	doc := loadFixture(t)
	first := New().Convert(doc)
	second := New().Convert(doc)
	require.Equal(t, first, second)

	for i := 1; i < len(first.Elements); i++ {
		require.LessOrEqual(t, first.Elements[i-1].Y, first.Elements[i].Y)
	}
}

func TestConvert_StableTies(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "first", Type: "TextBlock", Order: 1},
			{ID: "second", Type: "TextBlock", Order: 1},
			{ID: "zero", Type: "TextBlock", Order: 0},
		},
	}
	out := New().Convert(doc)
	require.Equal(t, []string{"zero", "first", "second"}, elementIDs(out.Elements))
}

func TestConvert_DuplicateIDsFirstWins(t *testing.T) {
	var dupes []string
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "x", Type: "QuoteSection", Order: 5},
			{ID: "x", Type: "CoverSection", Order: 1},
			{ID: "y", Type: "TextBlock", Order: 2},
		},
	}

	out := New(WithDuplicateHook(func(id string) { dupes = append(dupes, id) })).Convert(doc)
	require.Equal(t, []string{"x", "y"}, elementIDs(out.Elements))
	require.Equal(t, models.TypeCover, out.Elements[0].Type)
	require.Equal(t, []string{"x"}, dupes)
	require.Equal(t, 1, out.Elements[1].ZIndex)
}

func TestConvert_CanvasWidthOption(t *testing.T) {
	doc := models.LegacyDocument{PageStructure: []models.ComponentDescriptor{{ID: "a", Type: "QuoteSection"}}}
	out := New(WithCanvasWidth(435)).Convert(doc)
	require.Equal(t, 435.0, out.CanvasWidth)
	require.Equal(t, 50.0, out.Elements[0].X)

	require.Equal(t, CanvasWidth, New(WithCanvasWidth(-1)).Convert(doc).CanvasWidth)
}

func TestConvert_Extractors(t *testing.T) {
	out := New().Convert(loadFixture(t))
	byID := map[string]models.Element{}
	for _, e := range out.Elements {
		byID[e.ID] = e
	}

	require.Equal(t, models.CoverContent{
		Title:    "Rina & Adi",
		Subtitle: "We are getting married",
		Date:     "09.01.2026",
		ImageURL: "https://cdn.example.com/cover.jpg",
	}, byID["cover"].Content)
	require.Equal(t, models.Styles{"textColor": "#ffffff", "fontFamily": "Playfair Display"}, byID["cover"].Styles)

	require.Equal(t, models.QuoteContent{Quote: "Love is patient, love is kind.", Author: "1 Corinthians 13:4"}, byID["quote"].Content)
	require.Equal(t, models.ProfileContent{
		Name:      "Rina Putri",
		Role:      "The Bride",
		Bio:       "Daughter of Mr. and Mrs. Hartono",
		ImageURL:  "https://cdn.example.com/bride.jpg",
		Instagram: "@rina",
	}, byID["bride"].Content)
	require.Equal(t, models.GalleryContent{Images: []string{
		"https://cdn.example.com/g1.jpg",
		"https://cdn.example.com/g2.jpg",
		"https://cdn.example.com/g3.jpg",
	}}, byID["gallery"].Content)
	require.Equal(t, models.Styles{"borderRadius": 12.0}, byID["gallery"].Styles)
	require.Equal(t, models.CountdownContent{TargetDate: "2026-01-09T13:00:00+07:00", Label: "Counting down"}, byID["countdown"].Content)
	require.Equal(t, models.ClosingContent{Message: "Thank you for your blessings.", Signature: "Rina & Adi"}, byID["closing"].Content)
	require.Equal(t, models.TypeReligiousGreeting, byID["greeting"].Type)
}

func TestConvert_PassThrough(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{
			{ID: "a", Type: "FaqSection", Order: 1},
			{ID: "b", Type: "RsvpSection", Order: 2},
			{ID: "c", Type: "Divider", Order: 3},
		},
		ComponentData: map[string]models.ComponentData{
			"a": {"content": map[string]any{"question": "Dress code?", "children": []any{"k1", "k2"}}, "y": 10.0},
			"b": {"deadline": "2025-12-01", "x": 3.0, "color": "#000"},
			"c": {"content": "~"},
		},
	}

	out := New().Convert(doc)
	require.Equal(t, models.SectionContent{
		Children: []string{"k1", "k2"},
		Extra:    map[string]any{"question": "Dress code?"},
	}, out.Elements[0].Content)
	require.Equal(t, models.SectionContent{Extra: map[string]any{"deadline": "2025-12-01"}}, out.Elements[1].Content)
	require.Equal(t, models.Styles{"color": "#000"}, out.Elements[1].Styles)
	require.Equal(t, models.SectionContent{Extra: map[string]any{"content": "~"}}, out.Elements[2].Content)
}

func TestConvert_TextContentString(t *testing.T) {
	doc := models.LegacyDocument{
		PageStructure: []models.ComponentDescriptor{{ID: "t", Type: "Text", Order: 1}},
		ComponentData: map[string]models.ComponentData{"t": {"content": "Save the date"}},
	}
	require.Equal(t, models.TextContent{Text: "Save the date"}, New().Convert(doc).Elements[0].Content)
}

func TestTypeTables(t *testing.T) {
	for legacy, elemType := range legacyTypes {
		require.True(t, elemType.Valid(), legacy)
	}
	for elemType, legacy := range elementTypes {
		require.Equal(t, elemType, ElementTypeFor(legacy), "reverse table must invert the forward one")
	}
	require.Equal(t, FallbackLegacyType, LegacyTypeFor(models.TypeSection))
	require.Equal(t, FallbackLegacyType, LegacyTypeFor("bogus"))
}

func elementIDs(c []models.Element) []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.ID
	}
	return out
}
