package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Elizabeth1979/nano-banana/internal/http/handlers"
	"github.com/Elizabeth1979/nano-banana/internal/infra"
	"github.com/Elizabeth1979/nano-banana/internal/middleware"
)

// NewRouter assembles the service routes and middleware chain.
func NewRouter(app *handlers.App, logger infra.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Get("/", app.Index)
	r.Get("/api/stages", app.Stages)
	r.Get("/api/test", app.TestGenerate)
	r.Post("/generate", app.Generate)
	r.Get("/outputs/archive", app.OutputsArchive)
	r.Get("/outputs/{filename}", app.Output)

	return r
}
