package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/color-palette/api/models"
)

// maxCount caps every "how many colors" parameter.
const maxCount = 32

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.notFound(w, r, fmt.Errorf("no route for %s", r.URL.Path))
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Color Palette API")
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// countParam reads an optional positive count bounded by maxCount.
func countParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("count must be an integer: %q", raw)
	}
	return checkCount(n, def)
}

func checkCount(n, def int) (int, error) {
	if n == 0 {
		return def, nil
	}
	if n < 0 || n > maxCount {
		return 0, fmt.Errorf("count must be between 1 and %d", maxCount)
	}
	return n, nil
}

// POST /v1/auth/signup
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	userSignup := &models.UserSignupRequest{}
	if err := decodeJSON(r, userSignup); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	userSignup.Email = strings.TrimSpace(strings.ToLower(userSignup.Email))
	switch {
	case len(userSignup.Username) == 0:
		app.badRequest(w, r, errors.New("username is required"))
		return
	case strings.ContainsAny(userSignup.Username, " \t\n"):
		app.badRequest(w, r, errors.New("username cannot contain spaces"))
		return
	case !strings.Contains(userSignup.Email, "@"):
		app.badRequest(w, r, errors.New("a valid email is required"))
		return
	case len(userSignup.Password) < 8:
		app.badRequest(w, r, errors.New("password must be at least 8 characters"))
		return
	}

	if _, err := app.UserRepo.GetUserByEmail(userSignup.Email); err == nil {
		app.userAlreadyExists(w, r, err)
		return
	}

	if _, err := app.UserRepo.GetUserByUsername(userSignup.Username); err == nil {
		app.badRequest(w, r, errors.New("username already taken"))
		return
	}

	newUser, err := models.NewUser(*userSignup)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	storedUser, err := app.UserRepo.Create(newUser)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, storedUser)
}

// POST /v1/auth/login
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	creds := &models.Credentials{}
	if err := decodeJSON(r, creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}
	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))

	user, err := app.UserRepo.ValidateAndGetUser(*creds)
	if err != nil {
		app.invalidCredentials(w, r, errors.New("invalid email or password"))
		return
	}

	if !user.Approved {
		app.invalidCredentials(w, r, errors.New("user not yet approved"))
		return
	}

	accessExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))
	accessToken, err := models.NewAccessToken(user, app.Config.JwtSecret, accessExpiry)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	sameSite := http.SameSiteStrictMode
	if app.Config.JwtDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.JWT.ACCESS_COOKIE_NAME,
		Value:    accessToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.JwtDomain,
		Expires:  accessExpiry,
	})

	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: accessToken, Expiry: accessExpiry})
}

// GET /v1/users/me - Get current authenticated user
func (app *Application) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	user, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// GET /v1/users - Get all users (Admin only)
func (app *Application) getAllUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	users, err := app.UserRepo.GetAllUsers()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
