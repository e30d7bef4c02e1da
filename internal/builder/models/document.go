package models

import "encoding/json"

// ============================================================
// Legacy document
// ============================================================

// ComponentDescriptor is one entry of the legacy page_structure. Order only
// needs to sort; it is neither contiguous nor unique.
type ComponentDescriptor struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Order int    `json:"order"`
}

// ComponentData is the free-form bag stored per component id.
type ComponentData map[string]any

// LegacyDocument is the ordered-component representation that predates the
// flat element model. Renderers outside the editor still consume it.
type LegacyDocument struct {
	ID            string                   `json:"id,omitempty"`
	UserID        string                   `json:"user_id,omitempty"`
	Name          string                   `json:"name"`
	Slug          string                   `json:"slug,omitempty"`
	Status        string                   `json:"status"`
	EventDate     string                   `json:"event_date,omitempty"`
	EventTime     string                   `json:"event_time,omitempty"`
	VenueName     string                   `json:"venue_name,omitempty"`
	VenueAddress  string                   `json:"venue_address,omitempty"`
	CreatedAt     string                   `json:"created_at,omitempty"`
	UpdatedAt     string                   `json:"updated_at,omitempty"`
	PageStructure []ComponentDescriptor    `json:"page_structure"`
	ComponentData map[string]ComponentData `json:"component_data"`
}

// Header carries the document-level fields the element model does not own.
type Header struct {
	ID           string `json:"id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Status       string `json:"status,omitempty"`
	EventDate    string `json:"event_date,omitempty"`
	EventTime    string `json:"event_time,omitempty"`
	VenueName    string `json:"venue_name,omitempty"`
	VenueAddress string `json:"venue_address,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

func (d LegacyDocument) Header() Header {
	return Header{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         d.Name,
		Slug:         d.Slug,
		Status:       d.Status,
		EventDate:    d.EventDate,
		EventTime:    d.EventTime,
		VenueName:    d.VenueName,
		VenueAddress: d.VenueAddress,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Legacy returns a legacy document with only the header filled in, the
// base shape expected by reverse conversion.
func (h Header) Legacy() *LegacyDocument {
	return &LegacyDocument{
		ID:           h.ID,
		UserID:       h.UserID,
		Name:         h.Name,
		Slug:         h.Slug,
		Status:       h.Status,
		EventDate:    h.EventDate,
		EventTime:    h.EventTime,
		VenueName:    h.VenueName,
		VenueAddress: h.VenueAddress,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// ============================================================
// Element document
// ============================================================

// ElementDocumentVersion marks documents already in the element format.
const ElementDocumentVersion = 2

// ElementDocument is the persisted, migrated shape.
type ElementDocument struct {
	Version      int       `json:"version"`
	CanvasWidth  float64   `json:"canvasWidth"`
	CanvasHeight float64   `json:"canvasHeight"`
	Elements     []Element `json:"elements"`
	Header       *Header   `json:"header,omitempty"`
}

// IsLegacyShape reports whether raw looks like a LegacyDocument rather than
// an ElementDocument. Anything unparseable is not legacy.
func IsLegacyShape(raw []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, hasStructure := probe["page_structure"]
	_, hasElements := probe["elements"]
	return hasStructure && !hasElements
}
