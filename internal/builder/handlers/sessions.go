package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/builder/canvas"
	"invite-builder/internal/builder/editor"
	"invite-builder/internal/builder/elements"
	"invite-builder/internal/builder/models"
	"invite-builder/internal/builder/service"
	"invite-builder/internal/common/logger"
	"invite-builder/internal/common/metrics"
)

// ============================================================
// Session Handler
// ============================================================

// SessionHandler drives editing sessions: element edits, selection,
// gestures and the viewport.
type SessionHandler struct {
	projects *service.ProjectService
	sessions *service.SessionManager
	log      logger.Logger
}

func NewSessionHandler(projects *service.ProjectService, sessions *service.SessionManager, log logger.Logger) *SessionHandler {
	return &SessionHandler{projects: projects, sessions: sessions, log: log}
}

type sessionView struct {
	Token        string           `json:"token"`
	ProjectID    string           `json:"projectId"`
	CanvasWidth  float64          `json:"canvasWidth"`
	CanvasHeight float64          `json:"canvasHeight"`
	Dirty        bool             `json:"dirty"`
	Elements     []models.Element `json:"elements"`
	Selection    editor.Selection `json:"selection"`
	Viewport     editor.ViewState `json:"viewport"`
}

type addElementRequest struct {
	Type     models.ElementType `json:"type"`
	X        float64            `json:"x"`
	Y        float64            `json:"y"`
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	Rotation float64            `json:"rotation"`
	Styles   models.Styles      `json:"styles"`
	Content  json.RawMessage    `json:"content"`
}

type selectRequest struct {
	ID string `json:"id"`
}

type gestureRequest struct {
	Gesture  string  `json:"gesture"`
	Phase    string  `json:"phase"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Rotation float64 `json:"rotation"`
	// Screen marks left/top and the deltas as pointer coordinates.
	Screen   bool    `json:"screen"`
}

type pointerRequest struct {
	Event    string  `json:"event"`
	DeltaY   float64 `json:"deltaY"`
	Modifier bool    `json:"modifier"`
	Button   int     `json:"button"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
}

// Open загружает проект и открывает сессию редактирования.
func (h *SessionHandler) Open(c fiber.Ctx) error {
	projectID := c.Params("id")
	s, err := h.projects.OpenSession(c.Context(), projectID)
	if err != nil {
		return fail(c, h.log, err)
	}

	token := h.sessions.Open(projectID, s)
	h.log.Info("session opened", logger.String("project", projectID), logger.String("session", token))
	return c.Status(fiber.StatusCreated).JSON(viewOf(token, projectID, s))
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	token := c.Params("token")
	var view sessionView
	err := h.sessions.With(token, func(projectID string, s *editor.Session) error {
		view = viewOf(token, projectID, s)
		return nil
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(view)
}

// Close discards the session; unsaved changes are lost.
func (h *SessionHandler) Close(c fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("token")); err != nil {
		return fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================
// Elements
// ============================================================

func (h *SessionHandler) AddElement(c fiber.Ctx) error {
	var req addElementRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if !req.Type.Valid() {
		return badRequest(c, fmt.Sprintf("unknown element type %q", req.Type))
	}

	content, err := models.DecodeContent(req.Type, req.Content)
	if err != nil {
		return badRequest(c, "content: "+err.Error())
	}

	opts := []elements.Option{elements.WithRotation(req.Rotation)}
	if req.Width > 0 && req.Height > 0 {
		opts = append(opts, elements.WithSize(req.Width, req.Height))
	}
	if req.Styles != nil {
		opts = append(opts, elements.WithStyles(req.Styles))
	}
	if content != nil {
		opts = append(opts, elements.WithContent(content))
	}

	var el models.Element
	err = h.sessions.With(c.Params("token"), func(_ string, s *editor.Session) error {
		el = s.AddElement(req.Type, req.X, req.Y, opts...)
		return nil
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(el)
}

// UpdateElement применяет частичное обновление из панели свойств.
func (h *SessionHandler) UpdateElement(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return badRequest(c, "empty body")
	}

	id := c.Params("eid")
	var el models.Element
	var decodeErr error
	err := h.sessions.With(c.Params("token"), func(_ string, s *editor.Session) error {
		current, ok := s.Element(id)
		if !ok {
			return editor.ErrElementNotFound
		}
		p, err := models.DecodePatch(c.Body(), current.Type)
		if err != nil {
			decodeErr = err
			return nil
		}
		el, err = s.UpdateElement(id, p)
		return err
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	if decodeErr != nil {
		return badRequest(c, decodeErr.Error())
	}
	return c.JSON(el)
}

func (h *SessionHandler) DeleteElement(c fiber.Ctx) error {
	err := h.sessions.With(c.Params("token"), func(_ string, s *editor.Session) error {
		return s.DeleteElement(c.Params("eid"))
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================
// Selection & gestures
// ============================================================

// Select выделяет элемент; пустой id снимает выделение.
func (h *SessionHandler) Select(c fiber.Ctx) error {
	var req selectRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	var sel editor.Selection
	err := h.sessions.With(c.Params("token"), func(_ string, s *editor.Session) error {
		if req.ID == "" {
			s.Deselect()
		} else if err := s.Select(req.ID); err != nil {
			return err
		}
		sel = s.Selection()
		return nil
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(sel)
}

// Gesture runs one phase of a drag, resize or rotate on the selection.
// "move" returns the corrected frame, "end" the committed element.
func (h *SessionHandler) Gesture(c fiber.Ctx) error {
	var req gestureRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	var g canvas.Gesture
	if req.Phase != "end" {
		parsed, err := canvas.ParseGesture(req.Gesture)
		if err != nil {
			return badRequest(c, err.Error())
		}
		g = parsed
	}

	var resp fiber.Map
	err := h.sessions.With(c.Params("token"), func(_ string, s *editor.Session) error {
		switch req.Phase {
		case "begin":
			if err := s.BeginGesture(g); err != nil {
				return err
			}
			resp = fiber.Map{"selection": s.Selection()}

		case "move":
			left, top := req.Left, req.Top
			width, height := req.Width, req.Height
			dx, dy := req.DX, req.DY
			if req.Screen {
				left, top = s.ScreenPoint(left, top)
				width, height = s.ScreenDelta(width, height)
				dx, dy = s.ScreenDelta(dx, dy)
			}

			// a move for a gesture that is not running leaves the frame as is
			var frame canvas.Frame
			switch g {
			case canvas.Drag:
				frame = s.Drag(left, top)
			case canvas.Resize:
				frame = s.Resize(width, height, dx, dy)
			case canvas.Rotate:
				frame = s.Rotate(req.Rotation)
			}
			resp = fiber.Map{"frame": frame}

		case "end":
			el, done, ok := s.EndGesture()
			if !ok {
				resp = fiber.Map{"committed": false}
				return nil
			}
			metrics.GestureCommitted(done.String())
			resp = fiber.Map{"committed": true, "element": el, "canvasHeight": s.CanvasHeight()}

		default:
			resp = nil
		}
		return nil
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	if resp == nil {
		return badRequest(c, fmt.Sprintf("unknown phase %q", req.Phase))
	}
	return c.JSON(resp)
}

// ============================================================
// Viewport
// ============================================================

// Pointer feeds wheel and pointer events into the viewport.
func (h *SessionHandler) Pointer(c fiber.Ctx) error {
	var req pointerRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	var view editor.ViewState
	handled, known := false, true
	err := h.sessions.With(c.Params("token"), func(_ string, s *editor.Session) error {
		switch req.Event {
		case "wheel":
			handled = s.Wheel(req.DeltaY, req.Modifier)
		case "down":
			handled = s.PointerDown(req.Button)
		case "move":
			handled = s.PointerMove(req.DX, req.DY)
		case "up":
			s.PointerUp()
			handled = true
		default:
			known = false
		}
		view = s.Viewport()
		return nil
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	if !known {
		return badRequest(c, fmt.Sprintf("unknown pointer event %q", req.Event))
	}
	return c.JSON(fiber.Map{"handled": handled, "viewport": view})
}

// Save сохраняет текущий снимок сессии в проект.
func (h *SessionHandler) Save(c fiber.Ctx) error {
	var p *models.Project
	err := h.sessions.With(c.Params("token"), func(projectID string, s *editor.Session) error {
		saved, err := h.projects.Save(c.Context(), projectID, s.Snapshot())
		if err != nil {
			return err
		}
		s.MarkSaved()
		p = saved
		return nil
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(p)
}

func viewOf(token, projectID string, s *editor.Session) sessionView {
	return sessionView{
		Token:        token,
		ProjectID:    projectID,
		CanvasWidth:  s.CanvasWidth(),
		CanvasHeight: s.CanvasHeight(),
		Dirty:        s.Dirty(),
		Elements:     s.Elements(),
		Selection:    s.Selection(),
		Viewport:     s.Viewport(),
	}
}
