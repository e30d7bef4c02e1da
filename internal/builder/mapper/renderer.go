package mapper

import (
	"sort"
	"time"

	"invite-builder/internal/builder/models"
)

// ============================================================
// Renderer (elements → legacy)
// ============================================================

const (
	DefaultDocumentName = "Untitled Invitation"
	DefaultStatus       = "draft"
)

type Renderer struct {
	now func() time.Time
}

type RendererOption func(*Renderer)

// WithClock fixes the timestamp source (tests).
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render собирает legacy-документ из плоского списка элементов.
//
// Порядок компонентов берётся только из y (сверху вниз); zIndex и прежний
// order не учитываются. base может быть nil.
func (r *Renderer) Render(elements []models.Element, base *models.LegacyDocument) models.LegacyDocument {
	sorted := make([]models.Element, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	doc := r.header(base)
	doc.PageStructure = make([]models.ComponentDescriptor, 0, len(sorted))
	doc.ComponentData = make(map[string]models.ComponentData, len(sorted))

	for i, elem := range sorted {
		doc.PageStructure = append(doc.PageStructure, models.ComponentDescriptor{
			ID:    elem.ID,
			Type:  LegacyTypeFor(elem.Type),
			Order: i + 1,
		})
		doc.ComponentData[elem.ID] = componentBag(elem)
	}

	return doc
}

// componentBag: geometry, then content, then styles on top.
func componentBag(elem models.Element) models.ComponentData {
	bag := models.ComponentData{
		"width":    elem.Width,
		"height":   elem.Height,
		"x":        elem.X,
		"y":        elem.Y,
		"rotation": elem.Rotation,
	}
	if elem.Content != nil {
		for k, v := range elem.Content.Fields() {
			bag[k] = v
		}
	}
	for k, v := range elem.Styles {
		bag[k] = v
	}
	return bag
}

func (r *Renderer) header(base *models.LegacyDocument) models.LegacyDocument {
	now := r.now().UTC().Format(time.RFC3339)
	doc := models.LegacyDocument{
		Name:      DefaultDocumentName,
		Status:    DefaultStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if base == nil {
		return doc
	}

	doc.ID = base.ID
	doc.UserID = base.UserID
	doc.Slug = base.Slug
	doc.EventDate = base.EventDate
	doc.EventTime = base.EventTime
	doc.VenueName = base.VenueName
	doc.VenueAddress = base.VenueAddress
	if base.Name != "" {
		doc.Name = base.Name
	}
	if base.Status != "" {
		doc.Status = base.Status
	}
	if base.CreatedAt != "" {
		doc.CreatedAt = base.CreatedAt
	}
	return doc
}
