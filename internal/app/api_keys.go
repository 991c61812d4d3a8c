package app

import (
	"net/http"
	"slices"
)

// RequestHasInvalidAPIKey checks the "key" query parameter of a JSON API request.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(r.URL.Query().Get("key"))
}

// IsInvalidAPIKey reports whether key is blank or not among the configured keys.
func (app *Application) IsInvalidAPIKey(key string) bool {
	return key == "" || !slices.Contains(app.Config.ApiKeys, key)
}
