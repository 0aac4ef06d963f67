package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/color-palette/api/models"
)

type contextKey string

const userContextKey = contextKey("user")

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

// tokenFromRequest prefers the access cookie and falls back to a Bearer header.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
		return token, nil
	}
	return "", errors.New("no access token found")
}

// getUserFromJWT resolves the user behind the request's access token
func (app *Application) getUserFromJWT(r *http.Request) (models.User, error) {
	token, err := tokenFromRequest(r)
	if err != nil {
		return models.User{}, err
	}

	claims, err := models.ValidateJWTToken(token, app.Config.JwtSecret)
	if err != nil {
		return models.User{}, err
	}

	user, err := app.UserRepo.Get(claims.UserID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func userFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// authenticate that the user exists
func (app *Application) authenticate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := app.getUserFromJWT(r)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		if !user.Approved {
			app.invalidAuthorization(w, r, errors.New("user not approved"))
			return
		}

		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// optionalUser attaches the user when a valid token is present and lets
// anonymous requests through untouched.
func (app *Application) optionalUser(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, err := app.getUserFromJWT(r); err == nil && user.Approved {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
		}
		h.ServeHTTP(w, r)
	}
}

// Verify user has Admin permissions
func (app *Application) verifyPermissions(h http.HandlerFunc) http.HandlerFunc {
	return app.authenticate(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromContext(r.Context())
		if user.Kind != models.Admin {
			app.forbidden(w, r, ErrInvalidPrivilege)
			return
		}
		h.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// instrument records one request metric per call, labelled with the mux
// pattern so path parameters do not explode cardinality.
func (app *Application) instrument(mux *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		app.metrics().RecordRequest(r.Context(), r.Method, route, rec.status, time.Since(start))
	})
}
