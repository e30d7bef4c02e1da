package mapper

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"invite-builder/internal/builder/elements"
	"invite-builder/internal/builder/models"
)

// ============================================================
// Thumbnail (elements → SVG)
// ============================================================

type Point struct {
	X float64
	Y float64
}

// Thumbnail рисует схематичное превью страницы: контур каждого элемента с
// учётом поворота и подписью типа. Содержимое элементов не рендерится.
type Thumbnail struct {
	scale float64
}

func NewThumbnail(scale float64) *Thumbnail {
	if scale <= 0 {
		scale = 1
	}
	return &Thumbnail{scale: scale}
}

// Render собирает SVG; элементы рисуются в порядке zIndex.
func (t *Thumbnail) Render(doc *models.ElementDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}
	if doc.CanvasWidth <= 0 {
		return "", fmt.Errorf("canvas width must be positive, got %s", formatFloat(doc.CanvasWidth))
	}

	height := math.Max(doc.CanvasHeight, elements.Bottom(doc.Elements))
	width := doc.CanvasWidth

	ordered := make([]models.Element, len(doc.Elements))
	copy(ordered, doc.Elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width*t.scale), formatFloat(height*t.scale), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect x="0" y="0" width="%s" height="%s" fill="#fff" stroke="#ccc" />`,
		formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range ordered {
		builder.WriteString("  ")
		builder.WriteString(renderElement(elem))
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func renderElement(elem models.Element) string {
	cx := elem.X + elem.Width/2
	cy := elem.Y + elem.Height/2
	points := rectanglePoints(cx, cy, elem.Width, elem.Height, elem.Rotation)

	fill := "none"
	if bg, ok := elem.Styles["backgroundColor"].(string); ok && bg != "" {
		fill = bg
	}

	var path strings.Builder
	path.WriteString(`<g id="`)
	path.WriteString(html.EscapeString(elem.ID))
	path.WriteString(`"><path d="M `)
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	path.WriteString(fmt.Sprintf(` Z" fill="%s" stroke="%s" />`, html.EscapeString(fill), strokeFor(elem.Type)))
	path.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="10" text-anchor="middle">%s</text></g>`,
		formatFloat(cx), formatFloat(cy), html.EscapeString(string(elem.Type))))

	return path.String()
}

func strokeFor(t models.ElementType) string {
	switch t {
	case models.TypeImage, models.TypePhotoGallery, models.TypeCarousel:
		return "#1f77b4"
	case models.TypeText, models.TypeQuote, models.TypeReligiousGreeting:
		return "#2ca02c"
	case models.TypeSection:
		return "#888"
	default:
		return "#d62728"
	}
}

// ============================================================
// Geometry helpers
// ============================================================

// rectanglePoints returns the corners of a w×h box centered at (cx, cy)
// rotated clockwise by rotationDeg (y axis points down).
func rectanglePoints(cx, cy, width, height, rotationDeg float64) []Point {
	halfW := width / 2
	halfH := height / 2

	points := []Point{
		{X: cx - halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy + halfH},
		{X: cx - halfW, Y: cy + halfH},
	}

	if rotationDeg == 0 {
		return points
	}

	rad := rotationDeg * math.Pi / 180
	sin := math.Sin(rad)
	cos := math.Cos(rad)

	for i, p := range points {
		dx := p.X - cx
		dy := p.Y - cy
		points[i] = Point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}

	return points
}

func formatPoint(p Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
