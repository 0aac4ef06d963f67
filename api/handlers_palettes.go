package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/models"
)

// GET|POST /v1/palettes - List or save the current user's palettes
func (app *Application) palettes(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	switch r.Method {
	case http.MethodGet:
		palettes, err := app.PaletteRepo.ListByUser(user.UserID)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if palettes == nil {
			palettes = []models.SavedPalette{}
		}
		writeJSON(w, http.StatusOK, palettes)
	case http.MethodPost:
		req := models.PaletteRequest{}
		if err := decodeJSON(r, &req); err != nil {
			app.badJSONRequest(w, r, err)
			return
		}
		if err := req.Validate(); err != nil {
			app.badRequest(w, r, err)
			return
		}
		saved, err := app.PaletteRepo.Create(models.NewSavedPalette(user.UserID, req))
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	default:
		app.requireMethod(w, r, errors.New("GET or POST method required for this endpoint"), http.MethodGet, http.MethodPost)
	}
}

// GET|PUT|DELETE /v1/palettes/{id} - Public palettes are readable by anyone;
// private ones only by their owner, who alone may change them.
func (app *Application) palette(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
	default:
		app.requireMethod(w, r, errors.New("GET, PUT or DELETE method required for this endpoint"), http.MethodGet, http.MethodPut, http.MethodDelete)
		return
	}

	user, authenticated := userFromContext(r.Context())
	if r.Method != http.MethodGet && !authenticated {
		app.invalidAuthorization(w, r, errors.New("authentication required"))
		return
	}

	palette, err := app.PaletteRepo.Get(r.PathValue("id"))
	if err != nil {
		app.paletteError(w, r, err)
		return
	}

	owner := authenticated && palette.UserID == user.UserID
	if !owner && !palette.Public {
		app.paletteError(w, r, datastore.NoRowsError{NoRows: true, Err: errors.New("private palette")})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, palette)
	case http.MethodPut:
		if !owner {
			app.forbidden(w, r, errors.New("palette belongs to another user"))
			return
		}
		req := models.PaletteRequest{}
		if err := decodeJSON(r, &req); err != nil {
			app.badJSONRequest(w, r, err)
			return
		}
		if err := req.Validate(); err != nil {
			app.badRequest(w, r, err)
			return
		}
		palette.Name = req.Name
		palette.Colors = req.Colors
		palette.Public = req.Public
		palette.UpdatedAt = time.Now()

		updated, err := app.PaletteRepo.Update(palette)
		if err != nil {
			app.paletteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if !owner {
			app.forbidden(w, r, errors.New("palette belongs to another user"))
			return
		}
		if err := app.PaletteRepo.Delete(palette.PaletteID); err != nil {
			app.paletteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (app *Application) paletteError(w http.ResponseWriter, r *http.Request, err error) {
	if datastore.IsNoRows(err) {
		app.notFound(w, r, fmt.Errorf("palette %q not found", r.PathValue("id")))
		return
	}
	app.internalServerError(w, r, err)
}
