package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Elizabeth1979/nano-banana/pkg/zip"
)

// Output streams one previously generated image. Filenames are opaque tokens;
// anything the store rejects is reported as not found.
func (a *App) Output(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	data, err := a.Store.Read(r.Context(), filename)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "unknown image")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// OutputsArchive bundles the requested filenames into a zip download. Files
// the store cannot read are skipped rather than failing the archive.
func (a *App) OutputsArchive(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, name := range strings.Split(r.URL.Query().Get("files"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "files parameter is required")
		return
	}

	var assets []zip.Asset
	for _, name := range names {
		data, err := a.Store.Read(r.Context(), name)
		if err != nil {
			continue
		}
		assets = append(assets, zip.Asset{Filename: name, Data: data})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no readable files")
		return
	}

	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=outputs-%s.zip", time.Now().Format("20060102-150405")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
