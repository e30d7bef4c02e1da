package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/common/logger"
)

// ============================================================
// Proxy Handler
// ============================================================

// forwarded request headers
var requestHeaders = []string{
	fiber.HeaderContentType,
	fiber.HeaderAccept,
	fiber.HeaderAuthorization,
}

// hop-by-hop headers are not copied back
var skipResponseHeaders = map[string]struct{}{
	"Connection":        {},
	"Keep-Alive":        {},
	"Transfer-Encoding": {},
	"Content-Length":    {},
	"Upgrade":           {},
}

type Proxy struct {
	target string
	client *http.Client
	log    logger.Logger
}

type Option func(*Proxy)

func WithClient(c *http.Client) Option {
	return func(p *Proxy) { p.client = c }
}

// New проксирует запросы на target (например http://localhost:3001).
func New(target string, log logger.Logger, opts ...Option) *Proxy {
	p := &Proxy{
		target: strings.TrimSuffix(target, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Proxy) Target() string { return p.target }

// Handler forwards every request under prefix, with the prefix stripped and
// the query string kept.
func (p *Proxy) Handler(prefix string) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := strings.TrimPrefix(c.Path(), prefix)
		if path == "" {
			path = "/"
		}
		return p.Forward(c, path)
	}
}

// Forward проксирует запрос на target+path.
func (p *Proxy) Forward(c fiber.Ctx, path string) error {
	url := p.target + path
	if qs := c.Request().URI().QueryString(); len(qs) > 0 {
		url += "?" + string(qs)
	}

	p.log.Debug("proxy request",
		logger.String("method", c.Method()),
		logger.String("path", c.Path()),
		logger.String("upstream", url),
		logger.Int("content_length", len(c.Body())),
	)

	var body io.Reader
	if len(c.Body()) > 0 {
		body = bytes.NewReader(c.Body())
	}
	req, err := http.NewRequestWithContext(c.Context(), c.Method(), url, body)
	if err != nil {
		p.log.Error("proxy build request", logger.String("upstream", url), logger.Err(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	for _, h := range requestHeaders {
		if v := c.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("upstream unreachable", logger.String("upstream", url), logger.Err(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return p.copyResponse(c, resp)
}

func (p *Proxy) copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.log.Warn("proxy read response", logger.Err(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if _, skip := skipResponseHeaders[key]; skip || len(values) == 0 {
			continue
		}
		c.Set(key, values[0])
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
