// Package bridge is the local surface the host window and its UI talk to:
// HTTP routes for commands and events, and a websocket over which the core
// drives the window.
package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/valpere/promptlight/internal/metrics"
	"github.com/valpere/promptlight/internal/postprocess"
	"github.com/valpere/promptlight/internal/refine"
	"github.com/valpere/promptlight/internal/templates"
	"github.com/valpere/promptlight/internal/visibility"
)

// History records prompts that were sent for refinement.
type History interface {
	AddRecentPrompt(ctx context.Context, text string) error
}

type Config struct {
	AllowOrigins string
	// DispatchTimeout bounds how long show/hide requests wait for the
	// controller.
	DispatchTimeout time.Duration
}

// Deps are the collaborators the routes call into. History and Library
// may be nil.
type Deps struct {
	Refiner    refine.Refiner
	Controller *visibility.Controller
	Host       *HostWindow
	Library    *templates.Library
	History    History
	Logger     zerolog.Logger
}

type Server struct {
	app  *fiber.App
	deps Deps
	cfg  Config
	log  zerolog.Logger
}

func New(deps Deps, cfg Config) *Server {
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = 5 * time.Second
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "http://localhost,http://127.0.0.1"
	}

	app := fiber.New(fiber.Config{
		AppName:               "promptlight",
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s := &Server{app: app, deps: deps, cfg: cfg, log: deps.Logger}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(s.requestLogger)

	s.registerRoutes()
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("bridge listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	s.app.Get("/ws", s.handleWS)

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/show_window", s.handleVisibility(visibility.ShowRequested))
	api.Post("/hide_window", s.handleVisibility(visibility.HideRequested))
	api.Post("/refine_prompt", s.handleRefine)
	api.Post("/events/hotkey", s.handleHotkey)
	api.Post("/events/focus", s.handleFocus)
	api.Get("/templates", s.handleTemplates)
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("bridge request")
	return err
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "ok",
		"host_connected": s.deps.Host != nil && s.deps.Host.Connected(),
		"window":         s.deps.Controller.State().String(),
	})
}

func (s *Server) handleVisibility(ev visibility.Event) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.DispatchTimeout)
		defer cancel()

		state, err := s.deps.Controller.Dispatch(ctx, ev)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"window": state.String()})
	}
}

type refineBody struct {
	refine.Request
	Clean bool `json:"clean"`
}

func (s *Server) handleRefine(c *fiber.Ctx) error {
	var body refineBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	refined, err := s.deps.Refiner.Refine(c.UserContext(), body.Request)
	if err != nil {
		return refineError(c, err)
	}

	if s.deps.History != nil {
		if err := s.deps.History.AddRecentPrompt(c.UserContext(), body.Prompt); err != nil {
			s.log.Warn().Err(err).Msg("failed to record recent prompt")
		}
	}

	if body.Clean {
		refined = postprocess.Clean(refined)
	}
	return c.JSON(fiber.Map{"refined": refined})
}

func refineError(c *fiber.Ctx, err error) error {
	var rerr *refine.Error
	if !errors.As(err, &rerr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusBadGateway
	switch rerr.Kind {
	case refine.KindUnsupportedProvider, refine.KindMissingCredential, refine.KindEmptyPrompt:
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": rerr.Error(), "kind": string(rerr.Kind)})
}

func (s *Server) handleHotkey(c *fiber.Ctx) error {
	return s.post(c, visibility.HotkeyPressed)
}

func (s *Server) handleFocus(c *fiber.Ctx) error {
	var body struct {
		Focused *bool `json:"focused"`
	}
	if err := c.BodyParser(&body); err != nil || body.Focused == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "focused is required"})
	}
	if *body.Focused {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return s.post(c, visibility.FocusLost)
}

func (s *Server) post(c *fiber.Ctx, ev visibility.Event) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.DispatchTimeout)
	defer cancel()
	if err := s.deps.Controller.Post(ctx, ev); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (s *Server) handleTemplates(c *fiber.Ctx) error {
	category, err := templates.ParseCategory(c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lib := s.deps.Library
	if lib == nil {
		lib = templates.NewLibrary(nil)
	}
	search := lib.List
	if c.QueryBool("fuzzy") {
		search = lib.Search
	}
	list, err := search(c.UserContext(), c.Query("q"), category)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"data": list, "total": len(list)})
}

func (s *Server) handleWS(c *fiber.Ctx) error {
	if s.deps.Host == nil || !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		s.deps.Host.Serve(conn, s.hostEvent)
	})(c)
}

// hostEvent forwards an event read off the websocket. The read loop must
// not stall behind a full queue while the controller waits on an
// is_visible reply from the same loop, so the wait is bounded.
func (s *Server) hostEvent(ev visibility.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DispatchTimeout)
	defer cancel()
	if err := s.deps.Controller.Post(ctx, ev); err != nil {
		s.log.Warn().Err(err).Stringer("event", ev).Msg("dropped host event")
	}
}
