package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Elizabeth1979/nano-banana/internal/generate"
	"github.com/Elizabeth1979/nano-banana/internal/infra"
	"github.com/Elizabeth1979/nano-banana/internal/session"
	"github.com/Elizabeth1979/nano-banana/internal/stages"
	"github.com/Elizabeth1979/nano-banana/internal/storage"
)

//go:embed templates/*
var templateFS embed.FS

// batchRunner abstracts the orchestrator so handler tests can stub it out.
type batchRunner interface {
	GenerateBatch(ctx context.Context, basePrompt string, count int, editingImage string) []generate.Result
}

// App bundles the dependencies every handler needs.
type App struct {
	Config    *infra.Config
	Logger    *infra.Logger
	Sessions  *session.Manager
	Store     *storage.FileStore
	Runner    batchRunner
	templates *template.Template
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, logger *infra.Logger, sessions *session.Manager, store *storage.FileStore, runner batchRunner) (*App, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"displayTheme": stages.DisplayTheme,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &App{
		Config:    cfg,
		Logger:    logger,
		Sessions:  sessions,
		Store:     store,
		Runner:    runner,
		templates: tmpl,
	}, nil
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

// Health reports service liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
