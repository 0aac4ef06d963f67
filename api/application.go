package api

import (
	"math/rand"

	"github.com/color-palette/api/config"
	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/telemetry"
)

type Application struct {
	Config      config.Config
	UserRepo    datastore.UserRepository
	PaletteRepo datastore.PaletteRepository
	HistoryRepo datastore.HistoryRepository
	Names       *naming.Database
	Metrics     telemetry.Recorder
	// Rand seeds every generator. Leave nil in the server: the global source
	// is safe for concurrent handlers, a *rand.Rand is not.
	Rand *rand.Rand
}

func (app *Application) names() *naming.Database {
	if app.Names == nil {
		return naming.Default()
	}
	return app.Names
}

func (app *Application) metrics() telemetry.Recorder {
	if app.Metrics == nil {
		return telemetry.NoOpRecorder{}
	}
	return app.Metrics
}
