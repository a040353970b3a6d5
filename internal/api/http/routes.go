package httpapi

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Tonypepproni/Tidal-Estuary/internal/backend"
	"github.com/Tonypepproni/Tidal-Estuary/internal/normalize"
	"github.com/Tonypepproni/Tidal-Estuary/internal/surface"
	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

var validate = validator.New()

// TableSource returns the raw /data payload for the table view.
type TableSource interface {
	Raw(ctx context.Context) ([]byte, error)
}

// Handler serves the viewer surface and the table view.
type Handler struct {
	viewer  *timeline.Viewer
	surface *surface.Memory
	table   TableSource
	log     *slog.Logger
}

// NewHandler wires the handler dependencies.
func NewHandler(viewer *timeline.Viewer, surf *surface.Memory, table TableSource, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{viewer: viewer, surface: surf, table: table, log: log.With("component", "http")}
}

// NewApp creates the fiber app with the centralized JSON error handler.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tidal-estuary-viewer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "tidal-estuary-viewer",
		})
	})
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/", h.page)
	app.Get("/table", h.tablePage)

	v1 := app.Group("/api/v1")

	v1.Get("/viewer", h.getViewer)
	v1.Post("/viewer/scrub", h.scrub)
	v1.Post("/viewer/step-back", h.action(func() { h.viewer.StepBack() }))
	v1.Post("/viewer/step-forward", h.action(func() { h.viewer.StepForward() }))
	v1.Post("/viewer/latest", h.action(func() { h.viewer.ShowLatest() }))
	v1.Post("/viewer/play", h.togglePlay)
	v1.Put("/viewer/site", h.setSite)
	v1.Post("/viewer/site", h.setSite)

	v1.Get("/charts/:id", h.chartSVG)
	v1.Get("/table", h.getTable)
}

// scrubRequest is the body of POST /viewer/scrub.
type scrubRequest struct {
	Index    *int   `json:"index" form:"index" validate:"required,min=0"`
	Redirect string `json:"-" form:"redirect"`
}

// siteRequest is the body of PUT /viewer/site.
type siteRequest struct {
	Site     string `json:"site" form:"site" validate:"required"`
	Redirect string `json:"-" form:"redirect"`
}

type viewerResponse struct {
	View    timeline.ViewModel `json:"view"`
	Surface surface.Snapshot   `json:"surface"`
}

func (h *Handler) getViewer(c *fiber.Ctx) error {
	return c.JSON(viewerResponse{View: h.viewer.ViewModel(), Surface: h.surface.Snapshot()})
}

// respond redirects form submissions back to the page and returns the view otherwise.
func (h *Handler) respond(c *fiber.Ctx, redirect string) error {
	if redirect != "" {
		return c.Redirect(localPath(redirect), fiber.StatusSeeOther)
	}
	return h.getViewer(c)
}

// localPath returns target when it is a same-origin path, and "/" otherwise.
func localPath(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func (h *Handler) action(fn func()) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fn()
		return h.respond(c, c.FormValue("redirect"))
	}
}

func (h *Handler) scrub(c *fiber.Ctx) error {
	var req scrubRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.viewer.SetScrubIndex(*req.Index); err != nil {
		if errors.Is(err, timeline.ErrIndexOutOfRange) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return h.respond(c, req.Redirect)
}

func (h *Handler) setSite(c *fiber.Ctx) error {
	var req siteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.viewer.ApplyFilter(req.Site)
	return h.respond(c, req.Redirect)
}

func (h *Handler) togglePlay(c *fiber.Ctx) error {
	playing, err := h.viewer.TogglePlay()
	if err != nil {
		h.log.Error("toggle play failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to toggle play mode")
	}
	if redirect := c.FormValue("redirect"); redirect != "" {
		return c.Redirect(localPath(redirect), fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"playing": playing})
}

func (h *Handler) chartSVG(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := timeline.ChartByID(id); !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown chart")
	}

	chart, err := h.surface.Chart(id)
	if err != nil {
		if errors.Is(err, surface.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "chart not constructed")
		}
		return err
	}

	var buf bytes.Buffer
	if err := surface.RenderSVG(chart.Series, &buf); err != nil {
		if errors.Is(err, surface.ErrTooFewPoints) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		h.log.Error("chart render failed", "chart", id, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

// loadTable fetches /data and normalizes it. Format errors are logged with the full payload.
func (h *Handler) loadTable(ctx context.Context) (normalize.Table, error) {
	payload, err := h.table.Raw(ctx)
	if err != nil {
		h.log.Error("table data fetch failed", "error", err)
		var serr *backend.ServerError
		if errors.As(err, &serr) {
			return normalize.Table{}, fiber.NewError(fiber.StatusBadGateway, serr.Message)
		}
		return normalize.Table{}, fiber.NewError(fiber.StatusBadGateway, "Failed to load data: "+err.Error())
	}

	rows, err := normalize.Normalize(payload)
	if err != nil {
		var ferr *normalize.FormatError
		if errors.As(err, &ferr) {
			h.log.Error("unrecognized table payload", "error", err, "payload", string(ferr.Payload))
		}
		return normalize.Table{}, fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return normalize.BuildTable(rows), nil
}

func (h *Handler) getTable(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
	defer cancel()

	table, err := h.loadTable(ctx)
	if err != nil {
		return err
	}
	return c.JSON(table)
}
