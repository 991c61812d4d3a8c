package restapi

import (
	"net/http"
	"time"

	"arrivals.chinatownlogistic.com/internal/models"
)

type currentTimeModel struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
	Zone         string `json:"zone"`
}

// currentTimeHandler reports the server clock in the arrivals time zone, which is handy
// when checking a workstation's clock against the server's.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(api.Zone())
	api.sendResponse(w, r, models.NewEntryResponse(currentTimeModel{
		ReadableTime: now.Format(time.RFC3339),
		Time:         now.UnixMilli(),
		Zone:         api.Zone().String(),
	}))
}
