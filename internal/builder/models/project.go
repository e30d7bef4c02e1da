package models

import "encoding/json"

// ============================================================
// Project
// ============================================================

type DocumentFormat string

const (
	FormatLegacy   DocumentFormat = "legacy"
	FormatElements DocumentFormat = "elements"
)

// Project is a stored invitation page. Document holds either a LegacyDocument
// or an ElementDocument, as told by Format.
type Project struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Status    string          `json:"status"`
	Format    DocumentFormat  `json:"format"`
	Document  json.RawMessage `json:"document,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}
