package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"invite-builder/internal/builder/editor"
	"invite-builder/internal/builder/mapper"
	"invite-builder/internal/builder/models"
	"invite-builder/internal/builder/repository"
	"invite-builder/internal/common/logger"
	"invite-builder/internal/common/metrics"
)

var ErrInvalidDocument = errors.New("invalid document")

// Migration sources, used as the metrics label.
const (
	SourceAPI      = "api"
	SourceProject  = "project"
	SourceTemplate = "template"
)

// ============================================================
// Project Service
// ============================================================

// ProjectService stores projects and moves their documents between the
// legacy and element formats. Legacy documents are migrated when read; the
// element format is what gets written back.
type ProjectService struct {
	repo        *repository.Repository
	templates   *TemplateStore
	log         logger.Logger
	canvasWidth float64
	now         func() time.Time
	thumbnails  *mapper.Thumbnail
}

type ProjectOption func(*ProjectService)

func WithClock(now func() time.Time) ProjectOption {
	return func(s *ProjectService) { s.now = now }
}

func WithCanvasWidth(w float64) ProjectOption {
	return func(s *ProjectService) {
		if w > 0 {
			s.canvasWidth = w
		}
	}
}

func NewProjectService(repo *repository.Repository, templates *TemplateStore, log logger.Logger, opts ...ProjectOption) *ProjectService {
	s := &ProjectService{
		repo:        repo,
		templates:   templates,
		log:         log,
		canvasWidth: mapper.CanvasWidth,
		now:         time.Now,
		thumbnails:  mapper.NewThumbnail(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProjectService) CanvasWidth() float64 { return s.canvasWidth }

// Loaded is a project with its document in the element format.
type Loaded struct {
	Project  *models.Project
	Document models.ElementDocument
	Base     *models.LegacyDocument
}

type CreateInput struct {
	OwnerID  string          `json:"owner_id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Status   string          `json:"status"`
	Document json.RawMessage `json:"document"`
}

type UpdateInput struct {
	Name     *string         `json:"name"`
	Slug     *string         `json:"slug"`
	Status   *string         `json:"status"`
	Document json.RawMessage `json:"document"`
}

// ============================================================
// Conversion
// ============================================================

// Migrate runs forward migration, logging skipped duplicate ids.
func (s *ProjectService) Migrate(doc models.LegacyDocument, source string) models.ElementDocument {
	log := s.log.With(logger.String("source", source), logger.String("document", doc.ID))
	converter := mapper.New(
		mapper.WithCanvasWidth(s.canvasWidth),
		mapper.WithDuplicateHook(func(id string) {
			log.Warn("duplicate component id skipped", logger.String("component", id))
		}),
	)

	out := converter.Convert(doc)
	metrics.DocumentMigrated(source, len(out.Elements))
	log.Debug("document migrated", logger.Int("elements", len(out.Elements)))
	return out
}

// Render runs reverse conversion; base may be nil.
func (s *ProjectService) Render(elements []models.Element, base *models.LegacyDocument) models.LegacyDocument {
	return mapper.NewRenderer(mapper.WithClock(s.now)).Render(elements, base)
}

func (s *ProjectService) RenderThumbnail(doc *models.ElementDocument) (string, error) {
	return s.thumbnails.Render(doc)
}

// ============================================================
// CRUD
// ============================================================

// Create stores a new project. The document may be legacy, element-format
// or empty (a blank canvas).
func (s *ProjectService) Create(ctx context.Context, in CreateInput) (*models.Project, error) {
	format, document, err := s.normalize(in.Document)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	p := &models.Project{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		Name:      defaultString(in.Name, mapper.DefaultDocumentName),
		Slug:      in.Slug,
		Status:    defaultString(in.Status, mapper.DefaultStatus),
		Format:    format,
		Document:  document,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.log.Info("project created",
		logger.String("project", p.ID),
		logger.String("owner", p.OwnerID),
		logger.String("format", string(p.Format)),
	)
	return p, nil
}

// FromTemplate creates a project seeded with a legacy template. The
// document is stored as is and migrated on first load.
func (s *ProjectService) FromTemplate(ctx context.Context, name, ownerID, projectName string) (*models.Project, error) {
	tpl, err := s.templates.Load(name)
	if err != nil {
		return nil, err
	}
	tpl.UserID = ownerID
	if projectName != "" {
		tpl.Name = projectName
	}

	raw, err := json.Marshal(tpl)
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return s.Create(ctx, CreateInput{OwnerID: ownerID, Name: tpl.Name, Slug: tpl.Slug, Document: raw})
}

// Templates lists the available template names.
func (s *ProjectService) Templates() ([]string, error) {
	return s.templates.List()
}

// PreviewTemplate migrates a template without storing anything.
func (s *ProjectService) PreviewTemplate(name string) (models.ElementDocument, error) {
	tpl, err := s.templates.Load(name)
	if err != nil {
		return models.ElementDocument{}, err
	}
	doc := s.Migrate(*tpl, SourceTemplate)
	h := tpl.Header()
	doc.Header = &h
	return doc, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	return s.repo.List(ctx, ownerID)
}

// Load returns the project with its document in the element format,
// migrating a legacy document in memory.
func (s *ProjectService) Load(ctx context.Context, id string) (*Loaded, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p.Format {
	case models.FormatLegacy:
		var legacy models.LegacyDocument
		if err := json.Unmarshal(p.Document, &legacy); err != nil {
			return nil, fmt.Errorf("%w: stored legacy document: %v", ErrInvalidDocument, err)
		}
		base := s.baseFor(p, legacy.Header())
		doc := s.Migrate(legacy, SourceProject)
		h := base.Header()
		doc.Header = &h
		return &Loaded{Project: p, Document: doc, Base: base}, nil

	case models.FormatElements:
		var doc models.ElementDocument
		if err := json.Unmarshal(p.Document, &doc); err != nil {
			return nil, fmt.Errorf("%w: stored element document: %v", ErrInvalidDocument, err)
		}
		var h models.Header
		if doc.Header != nil {
			h = *doc.Header
		}
		base := s.baseFor(p, h)
		h = base.Header()
		doc.Header = &h
		return &Loaded{Project: p, Document: doc, Base: base}, nil
	}

	return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidDocument, p.Format)
}

// Save stores doc as the project's element document.
func (s *ProjectService) Save(ctx context.Context, id string, doc models.ElementDocument) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Version = models.ElementDocumentVersion
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	p.Format = models.FormatElements
	p.Document = raw
	p.UpdatedAt = s.timestamp()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	s.log.Info("project saved", logger.String("project", id), logger.Int("elements", len(doc.Elements)))
	return p, nil
}

// Update edits the header and, optionally, replaces the document.
func (s *ProjectService) Update(ctx context.Context, id string, in UpdateInput) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if len(in.Document) > 0 {
		format, document, err := s.normalize(in.Document)
		if err != nil {
			return nil, err
		}
		p.Format, p.Document = format, document
	}

	p.UpdatedAt = s.timestamp()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", logger.String("project", id))
	return nil
}

// Preview converts the project back into the legacy shape consumed by the
// public invitation renderer.
func (s *ProjectService) Preview(ctx context.Context, id string) (models.LegacyDocument, error) {
	loaded, err := s.Load(ctx, id)
	if err != nil {
		return models.LegacyDocument{}, err
	}
	return s.Render(loaded.Document.Elements, loaded.Base), nil
}

func (s *ProjectService) Thumbnail(ctx context.Context, id string) (string, error) {
	loaded, err := s.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.RenderThumbnail(&loaded.Document)
}

// OpenSession loads the project into a new editing session.
func (s *ProjectService) OpenSession(ctx context.Context, id string) (*editor.Session, error) {
	loaded, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	renderer := mapper.NewRenderer(mapper.WithClock(s.now))
	return editor.New(loaded.Document, loaded.Base, editor.WithRenderer(renderer)), nil
}

// Ready checks the database.
func (s *ProjectService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ============================================================
// Helpers
// ============================================================

// normalize sniffs the document format and re-encodes it canonically.
func (s *ProjectService) normalize(raw json.RawMessage) (models.DocumentFormat, json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		empty := models.ElementDocument{
			Version:      models.ElementDocumentVersion,
			CanvasWidth:  s.canvasWidth,
			CanvasHeight: mapper.MinCanvasHeight,
			Elements:     []models.Element{},
		}
		data, err := json.Marshal(empty)
		return models.FormatElements, data, err
	}

	if models.IsLegacyShape(raw) {
		var legacy models.LegacyDocument
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		data, err := json.Marshal(legacy)
		return models.FormatLegacy, data, err
	}

	var doc models.ElementDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Elements == nil {
		return "", nil, fmt.Errorf("%w: neither page_structure nor elements present", ErrInvalidDocument)
	}
	for _, el := range doc.Elements {
		if el.ID == "" || !el.Type.Valid() {
			return "", nil, fmt.Errorf("%w: element %q has type %q", ErrInvalidDocument, el.ID, el.Type)
		}
	}
	doc.Version = models.ElementDocumentVersion
	if doc.CanvasWidth <= 0 {
		doc.CanvasWidth = s.canvasWidth
	}
	data, err := json.Marshal(doc)
	return models.FormatElements, data, err
}

// baseFor fills the header from the project row where the stored document
// has nothing.
func (s *ProjectService) baseFor(p *models.Project, h models.Header) *models.LegacyDocument {
	base := h.Legacy()
	base.ID = p.ID
	base.UserID = defaultString(base.UserID, p.OwnerID)
	base.Name = p.Name
	base.Slug = defaultString(p.Slug, base.Slug)
	base.Status = p.Status
	base.CreatedAt = p.CreatedAt
	return base
}

func (s *ProjectService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
