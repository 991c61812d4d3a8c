package app

import (
	"context"
	"log/slog"
	"time"

	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/models"
)

// ArrivalSource reads stored arrivals for reporting.
type ArrivalSource interface {
	ArrivalsBetween(ctx context.Context, loc models.Location, start, end time.Time) ([]models.ArrivalRecord, error)
}

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Arrivals ArrivalSource
}

// Zone is the time zone report dates are interpreted in.
func (app *Application) Zone() *time.Location {
	if app.Config.Location == nil {
		return time.Local
	}
	return app.Config.Location
}
