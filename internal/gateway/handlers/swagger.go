package handlers

import (
	"os"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Swagger Handlers
// ============================================================

// DocsHandler отдаёт OpenAPI-описание builder API и страницу Swagger UI.
type DocsHandler struct {
	docPath string
}

func NewDocsHandler(docPath string) *DocsHandler {
	return &DocsHandler{docPath: docPath}
}

// OpenAPI отдаёт описание API в YAML.
func (h *DocsHandler) OpenAPI(c fiber.Ctx) error {
	data, err := os.ReadFile(h.docPath)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "openapi document not found"})
	}
	c.Type("yaml")
	return c.Send(data)
}

// UI отдаёт страницу Swagger UI, читающую описание из /docs/openapi.yaml.
func (h *DocsHandler) UI(c fiber.Ctx) error {
	c.Type("html")
	return c.SendString(swaggerPage)
}

const swaggerPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Invite Builder API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/docs/openapi.yaml',
      dom_id: '#swagger-ui',
    });
  };
</script>
</body>
</html>`
