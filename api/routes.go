package api

import (
	"net/http"
	"regexp"
	"strings"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "wss://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	cleanedRequest := cleanOrigin(origin)

	// Allow localhost for development
	if localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || isAllowedOrigin(origin, app.Config.AllowedOrigins) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) *http.ServeMux {
	finalMux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/v1/auth/signup", app.signup)
	mux.HandleFunc("/v1/auth/login", app.login)

	mux.HandleFunc("/v1/colors/convert", app.convertColor)
	mux.HandleFunc("/v1/colors/name", app.nameColor)
	mux.HandleFunc("/v1/colors/search", app.searchColors)
	mux.HandleFunc("/v1/colors/random", app.randomColors)
	mux.HandleFunc("/v1/colors/related", app.relatedColors)
	mux.HandleFunc("/v1/colors/variations", app.colorVariations)
	mux.HandleFunc("/v1/presets", app.listPresets)
	mux.HandleFunc("/v1/presets/generate", app.generatePreset)
	mux.HandleFunc("/v1/presets/match", app.matchPresets)
	mux.HandleFunc("/v1/contrast", app.checkContrast)
	mux.HandleFunc("/v1/contrast/summary", app.summarizeContrast)

	// Anonymous history sessions
	mux.HandleFunc("/v1/history", app.createHistory)
	mux.HandleFunc("/v1/history/{id}", app.historySession)
	mux.HandleFunc("/v1/history/{id}/push", app.pushHistory)
	mux.HandleFunc("/v1/history/{id}/undo", app.undoHistory)
	mux.HandleFunc("/v1/history/{id}/redo", app.redoHistory)

	// Authenticated endpoints
	mux.HandleFunc("/v1/users/me", app.authenticate(app.getCurrentUser))
	mux.HandleFunc("/v1/palettes", app.authenticate(app.palettes))
	mux.HandleFunc("/v1/palettes/{id}", app.optionalUser(app.palette))

	// Admin endpoints
	mux.HandleFunc("/v1/users", app.verifyPermissions(app.getAllUsers))

	// Wrap entire mux with CORS and origins check
	finalMux.Handle("/", app.instrument(mux, wrapMuxWithCorsAndOrigins(mux, app)))

	return finalMux
}
