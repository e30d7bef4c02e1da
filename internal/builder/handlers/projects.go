package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/builder/models"
	"invite-builder/internal/builder/service"
	"invite-builder/internal/common/logger"
)

// ============================================================
// Project Handler
// ============================================================

type ProjectHandler struct {
	projects *service.ProjectService
	sessions *service.SessionManager
	log      logger.Logger
}

func NewProjectHandler(projects *service.ProjectService, sessions *service.SessionManager, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, sessions: sessions, log: log}
}

// projectPayload is a project with its document in the element format.
type projectPayload struct {
	*models.Project
	Document models.ElementDocument `json:"document"`
}

type fromTemplateRequest struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// ListTemplates возвращает имена доступных шаблонов.
func (h *ProjectHandler) ListTemplates(c fiber.Ctx) error {
	names, err := h.projects.Templates()
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fiber.Map{"templates": names})
}

// PreviewTemplate отдаёт шаблон, уже смигрированный в элементы.
func (h *ProjectHandler) PreviewTemplate(c fiber.Ctx) error {
	doc, err := h.projects.PreviewTemplate(c.Params("name"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(doc)
}

// CreateFromTemplate создаёт проект из шаблона; тело необязательно.
func (h *ProjectHandler) CreateFromTemplate(c fiber.Ctx) error {
	var req fromTemplateRequest
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}

	p, err := h.projects.FromTemplate(c.Context(), c.Params("name"), req.OwnerID, req.Name)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var in service.CreateInput
	if err := decodeBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}

	p, err := h.projects.Create(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// List returns project headers, filtered by ?owner=.
func (h *ProjectHandler) List(c fiber.Ctx) error {
	projects, err := h.projects.List(c.Context(), c.Query("owner"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// Get returns the project with its document migrated to elements.
func (h *ProjectHandler) Get(c fiber.Ctx) error {
	loaded, err := h.projects.Load(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(projectPayload{Project: loaded.Project, Document: loaded.Document})
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	var in service.UpdateInput
	if err := decodeBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}

	p, err := h.projects.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(p)
}

// Delete removes the project and closes its open sessions.
func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.projects.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	if n := h.sessions.CloseProject(id); n > 0 {
		h.log.Info("sessions closed with project", logger.String("project", id), logger.Int("sessions", n))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Preview возвращает legacy-документ для публичного рендера приглашения.
func (h *ProjectHandler) Preview(c fiber.Ctx) error {
	doc, err := h.projects.Preview(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(doc)
}

func (h *ProjectHandler) Thumbnail(c fiber.Ctx) error {
	svg, err := h.projects.Thumbnail(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return sendSVG(c, svg)
}
