package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	handle := func(path string, h http.HandlerFunc) {
		var handler http.Handler = validateAPIKey(api, h)
		if api.rateLimiter != nil {
			handler = api.rateLimiter.Handler(handler)
		}
		router.Handler(http.MethodGet, path, handler)
	}

	handle("/api/arrivals/:code", api.arrivalReportHandler)
	handle("/api/current-time.json", api.currentTimeHandler)
}
