package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/models"
)

// POST /v1/history - Start an anonymous undo/redo session, optionally seeded
// with a first palette.
func (app *Application) createHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.HistoryPushRequest{}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		app.badJSONRequest(w, r, err)
		return
	}

	session := models.NewHistorySession(app.Config.HistoryTTL)
	if len(req.Colors) > 0 {
		colors, err := models.NormalizeColors(req.Colors)
		if err != nil {
			app.badRequest(w, r, err)
			return
		}
		session.State = session.State.Push(colors)
	}

	stored, err := app.HistoryRepo.Create(session)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, stored.Response())
}

// GET|PUT /v1/history/{id}
func (app *Application) historySession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		session, err := app.HistoryRepo.Get(r.PathValue("id"))
		if err != nil {
			app.historyError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, session.Response())
	case http.MethodPut:
		app.replaceHistory(w, r)
	default:
		app.requireMethod(w, r, fmt.Errorf("GET or PUT method required for this endpoint"), http.MethodGet, http.MethodPut)
	}
}

func (app *Application) replaceHistory(w http.ResponseWriter, r *http.Request) {
	req := models.HistoryReplaceRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	entries := make([][]string, len(req.Entries))
	for i, entry := range req.Entries {
		colors, err := models.NormalizeColors(entry)
		if err != nil {
			app.badRequest(w, r, fmt.Errorf("entry %d: %w", i, err))
			return
		}
		entries[i] = colors
	}

	app.applyHistory(w, r, func(s models.PaletteHistory) models.PaletteHistory {
		if req.Index == nil {
			return s.Replace(entries)
		}
		return s.ReplaceAt(entries, *req.Index)
	})
}

// POST /v1/history/{id}/push
func (app *Application) pushHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.HistoryPushRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}
	colors, err := models.NormalizeColors(req.Colors)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	app.applyHistory(w, r, func(s models.PaletteHistory) models.PaletteHistory {
		return s.Push(colors)
	})
}

// POST /v1/history/{id}/undo
func (app *Application) undoHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}
	app.applyHistory(w, r, func(s models.PaletteHistory) models.PaletteHistory {
		return s.Undo()
	})
}

// POST /v1/history/{id}/redo
func (app *Application) redoHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}
	app.applyHistory(w, r, func(s models.PaletteHistory) models.PaletteHistory {
		return s.Redo()
	})
}

// applyHistory runs fn against the session named in the path, trims the
// result to the configured size and writes the new state.
func (app *Application) applyHistory(w http.ResponseWriter, r *http.Request, fn func(models.PaletteHistory) models.PaletteHistory) {
	maxEntries := app.Config.HistoryMaxEntries
	session, err := app.HistoryRepo.Apply(r.PathValue("id"), app.Config.HistoryTTL, func(s models.PaletteHistory) models.PaletteHistory {
		return fn(s).Trim(maxEntries)
	})
	if err != nil {
		app.historyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Response())
}

func (app *Application) historyError(w http.ResponseWriter, r *http.Request, err error) {
	if datastore.IsNoRows(err) {
		app.notFound(w, r, fmt.Errorf("history session %q not found or expired", r.PathValue("id")))
		return
	}
	app.internalServerError(w, r, err)
}
