package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Handlers groups the builder's HTTP handlers.
type Handlers struct {
	Health   *HealthHandler
	Convert  *ConvertHandler
	Projects *ProjectHandler
	Sessions *SessionHandler
}

// Register mounts every builder route on r.
func Register(r fiber.Router, h Handlers) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)

	// ============================================================
	// Conversion Routes
	// ============================================================

	r.Post("/migrate", h.Convert.Migrate)
	r.Post("/render", h.Convert.Render)
	r.Post("/thumbnail", h.Convert.Thumbnail)

	// ============================================================
	// Template & Project Routes
	// ============================================================

	r.Get("/templates", h.Projects.ListTemplates)
	r.Get("/templates/:name", h.Projects.PreviewTemplate)
	r.Post("/templates/:name/projects", h.Projects.CreateFromTemplate)

	r.Post("/projects", h.Projects.Create)
	r.Get("/projects", h.Projects.List)
	r.Get("/projects/:id", h.Projects.Get)
	r.Put("/projects/:id", h.Projects.Update)
	r.Delete("/projects/:id", h.Projects.Delete)
	r.Get("/projects/:id/preview", h.Projects.Preview)
	r.Get("/projects/:id/thumbnail", h.Projects.Thumbnail)

	// ============================================================
	// Editing Session Routes
	// ============================================================

	r.Post("/projects/:id/sessions", h.Sessions.Open)
	r.Get("/sessions/:token", h.Sessions.Get)
	r.Delete("/sessions/:token", h.Sessions.Close)
	r.Post("/sessions/:token/elements", h.Sessions.AddElement)
	r.Patch("/sessions/:token/elements/:eid", h.Sessions.UpdateElement)
	r.Delete("/sessions/:token/elements/:eid", h.Sessions.DeleteElement)
	r.Post("/sessions/:token/select", h.Sessions.Select)
	r.Post("/sessions/:token/gesture", h.Sessions.Gesture)
	r.Post("/sessions/:token/pointer", h.Sessions.Pointer)
	r.Post("/sessions/:token/save", h.Sessions.Save)
}
