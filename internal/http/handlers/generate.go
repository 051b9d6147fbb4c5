package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Elizabeth1979/nano-banana/internal/generate"
	"github.com/Elizabeth1979/nano-banana/internal/imaging"
	"github.com/Elizabeth1979/nano-banana/internal/stages"
)

const (
	defaultNumImages = 4
	maxNumImages     = 8
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	NumImages int    `json:"num_images"`
	StageID   int    `json:"stage_id"`
}

// Generate runs one image batch for the session. The body is either JSON or
// multipart form data with an optional reference image; upload problems and a
// missing prompt are rejected before any generation work starts.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	var editingImage string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
		if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid form data")
			return
		}
		req.Prompt = r.FormValue("prompt")
		req.NumImages, _ = strconv.Atoi(r.FormValue("num_images"))
		req.StageID, _ = strconv.Atoi(r.FormValue("stage_id"))

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			ext := strings.ToLower(filepath.Ext(header.Filename))
			if !allowedExtensions[ext] {
				a.error(w, http.StatusBadRequest, "bad_request", "unsupported file type")
				return
			}
			data, err := io.ReadAll(file)
			if err != nil {
				a.error(w, http.StatusBadRequest, "bad_request", "failed to read uploaded image")
				return
			}
			editingImage, err = imaging.Normalize(data)
			if err != nil {
				a.error(w, http.StatusBadRequest, "bad_request", "failed to process uploaded image")
				return
			}
		}
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "no prompt provided")
		return
	}
	if req.NumImages <= 0 {
		req.NumImages = defaultNumImages
	}
	if req.NumImages > maxNumImages {
		req.NumImages = maxNumImages
	}

	enhancedPrompt := req.Prompt
	if req.StageID != 0 {
		enhancedPrompt = stages.EnhancePrompt(req.Prompt, req.StageID)
	}

	results := a.Runner.GenerateBatch(r.Context(), enhancedPrompt, req.NumImages, editingImage)
	tally := generate.Tally(results)

	// Progress only moves after the full batch join, one record per
	// successful image so intermediate thresholds are never skipped.
	progress := a.Sessions.Progress(w, r)
	stageUnlocked := false
	for i := 0; i < tally.Successful; i++ {
		if progress.Record() {
			stageUnlocked = true
		}
	}

	mode := "generate"
	if editingImage != "" {
		mode = "edit"
	}
	a.json(w, http.StatusOK, map[string]any{
		"base_prompt":      req.Prompt,
		"enhanced_prompt":  enhancedPrompt,
		"results":          results,
		"successful_count": tally.Successful,
		"failed_count":     tally.Failed,
		"stage_unlocked":   stageUnlocked,
		"current_stage":    progress.CurrentStage,
		"images_generated": progress.ImagesGenerated,
		"mode":             mode,
	})
}

// TestGenerate runs a small fixed batch, useful for smoke-testing upstream
// connectivity without the UI.
func (a *App) TestGenerate(w http.ResponseWriter, r *http.Request) {
	results := a.Runner.GenerateBatch(r.Context(), "a serene lake at sunset", 2, "")
	a.json(w, http.StatusOK, map[string]any{"results": results})
}
