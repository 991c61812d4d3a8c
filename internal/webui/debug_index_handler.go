package webui

import (
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"

	"arrivals.chinatownlogistic.com/internal/models"
)

type debugData struct {
	Title string
	Pre   string
}

type locationDump struct {
	Code        string
	DisplayName string
	MachineName string
}

func scheduleDump() map[string]map[string]string {
	dump := make(map[string]map[string]string)
	for _, loc := range models.AllLocations() {
		days := make(map[string]string)
		for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
			if expected, ok := loc.Schedule()[weekday]; ok {
				days[weekday.String()] = expected.String()
			}
		}
		dump[loc.Code()] = days
	}
	return dump
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "locations":
		locations := make([]locationDump, 0, 3)
		for _, loc := range models.AllLocations() {
			locations = append(locations, locationDump{
				Code:        loc.Code(),
				DisplayName: loc.DisplayName(),
				MachineName: loc.MachineName(),
			})
		}
		data = locations
		title = "Locales"
	case "schedules":
		data = scheduleDump()
		title = "Horarios esperados"
	default:
		data = map[string]string{
			"error": "Please use one of the following: locations, schedules.",
		}
		title = "Choose a data type"
	}

	webUI.render(w, r, "debug_index.html", debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
}
