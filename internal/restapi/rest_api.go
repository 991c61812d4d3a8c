package restapi

import (
	"time"

	"arrivals.chinatownlogistic.com/internal/app"
)

// RestAPI serves the JSON arrival endpoints.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI builds the API with a per-client limiter of Config.RateLimit requests per
// second. Call Stop when the server shuts down.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: newRateLimiter(application.Config.RateLimit, time.Second),
	}
}

// Stop releases the limiter's background cleanup.
func (api *RestAPI) Stop() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
