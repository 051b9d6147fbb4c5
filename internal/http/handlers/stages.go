package handlers

import (
	"net/http"

	"github.com/Elizabeth1979/nano-banana/internal/stages"
)

type stageView struct {
	Stage    stages.Stage
	Unlocked bool
}

type indexView struct {
	ImagesGenerated int
	CurrentStage    int
	Stages          []stageView
}

// Index renders the progress page.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	progress := a.Sessions.Progress(w, r)

	view := indexView{
		ImagesGenerated: progress.ImagesGenerated,
		CurrentStage:    progress.CurrentStage,
	}
	for _, s := range stages.Catalog {
		view.Stages = append(view.Stages, stageView{
			Stage:    s,
			Unlocked: progress.ImagesGenerated >= s.UnlockRequirement,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		a.Logger.Error().Err(err).Msg("handlers: render index")
	}
}

// Stages returns the session's progress alongside the stage catalog.
func (a *App) Stages(w http.ResponseWriter, r *http.Request) {
	progress := a.Sessions.Progress(w, r)
	a.json(w, http.StatusOK, map[string]any{
		"current_stage":    progress.CurrentStage,
		"images_generated": progress.ImagesGenerated,
		"unlocked_stages":  stages.UnlockedIDs(progress.ImagesGenerated),
		"stages":           stages.Catalog,
	})
}
