package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/builder/models"
	"invite-builder/internal/builder/service"
	"invite-builder/internal/common/logger"
)

// ============================================================
// Convert Handler
// ============================================================

// ConvertHandler exposes the stateless conversions: legacy → elements,
// elements → legacy, elements → SVG thumbnail.
type ConvertHandler struct {
	projects *service.ProjectService
	log      logger.Logger
}

func NewConvertHandler(projects *service.ProjectService, log logger.Logger) *ConvertHandler {
	return &ConvertHandler{projects: projects, log: log}
}

type renderRequest struct {
	Elements []models.Element       `json:"elements"`
	Header   *models.Header         `json:"header"`
	Base     *models.LegacyDocument `json:"base"`
}

// Migrate конвертирует legacy-документ в element-документ.
func (h *ConvertHandler) Migrate(c fiber.Ctx) error {
	if !models.IsLegacyShape(c.Body()) {
		return badRequest(c, "legacy document with page_structure required")
	}

	var doc models.LegacyDocument
	if err := decodeBody(c, &doc); err != nil {
		return badRequest(c, err.Error())
	}

	out := h.projects.Migrate(doc, service.SourceAPI)
	header := doc.Header()
	out.Header = &header
	h.log.Debug("legacy document converted",
		logger.Int("components", len(doc.PageStructure)),
		logger.Int("elements", len(out.Elements)),
	)
	return c.JSON(out)
}

// Render собирает legacy-документ из списка элементов.
func (h *ConvertHandler) Render(c fiber.Ctx) error {
	var req renderRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	base := req.Base
	if base == nil && req.Header != nil {
		base = req.Header.Legacy()
	}
	return c.JSON(h.projects.Render(req.Elements, base))
}

// Thumbnail рисует SVG-превью element-документа.
func (h *ConvertHandler) Thumbnail(c fiber.Ctx) error {
	var doc models.ElementDocument
	if err := decodeBody(c, &doc); err != nil {
		return badRequest(c, err.Error())
	}
	if doc.CanvasWidth == 0 {
		doc.CanvasWidth = h.projects.CanvasWidth()
	}

	svg, err := h.projects.RenderThumbnail(&doc)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return sendSVG(c, svg)
}

func sendSVG(c fiber.Ctx, svg string) error {
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}
