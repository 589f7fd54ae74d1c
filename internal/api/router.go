package api

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/Houeta/pair-compare/internal/config"
	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/services/workflow"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Workflow runs one operator action.
type Workflow interface {
	Handle(ctx context.Context, action workflow.Action) (*workflow.Result, error)
}

// Logs locates the newest persisted comparison log.
type Logs interface {
	Latest() (string, error)
	Path() string
}

// Archive lists archived rows, newest first.
type Archive interface {
	RecentRecords(ctx context.Context, limit int) ([]models.ArchivedRecord, error)
}

// Handler serves the comparison form and the download endpoints.
type Handler struct {
	log       *slog.Logger
	flow      Workflow
	logs      Logs
	archive   Archive // nil when the archive is disabled
	startedAt time.Time
}

func NewHandler(log *slog.Logger, flow Workflow, logs Logs, archive Archive, startedAt time.Time) *Handler {
	return &Handler{log: log, flow: flow, logs: logs, archive: archive, startedAt: startedAt}
}

// NewRouter creates a configured gin engine. The gin mode is set by the caller.
//
// Middleware chain: Recovery, RequestID, Logger, RateLimit. Health is registered
// ahead of the limiter so probes are never throttled.
func NewRouter(log *slog.Logger, h *Handler, cfg config.HTTP) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	r.Use(gin.Recovery(), RequestID(), Logger(log))

	r.GET("/health", h.health)

	limited := r.Group("")
	limited.Use(RateLimit(cfg.RateRPS, cfg.RateBurst))

	limited.GET("/", h.index)
	limited.POST("/", h.submit)
	limited.GET("/download-csv", h.downloadCSV)
	limited.GET("/download-xlsx", h.downloadXLSX)
	limited.GET("/history", h.history)

	return r
}
