package restapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"arrivals.chinatownlogistic.com/internal/arrivaldb"
	"arrivals.chinatownlogistic.com/internal/logging"
	"arrivals.chinatownlogistic.com/internal/models"
	"arrivals.chinatownlogistic.com/internal/utils"
)

// arrivalReportHandler serves the delta report for one location as JSON.
func (api *RestAPI) arrivalReportHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractIDFromParams(r, "code")
	if err := utils.ValidateCode(code); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"code": {err.Error()}})
		return
	}

	loc, ok := models.LocationFromCode(code)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	query := r.URL.Query()
	start, end, fieldErrors := utils.ParseDateRange(query.Get("start"), query.Get("end"), "start", "end", api.Zone())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	began := time.Now()
	records, err := api.Arrivals.ArrivalsBetween(r.Context(), loc, start, end)
	if err != nil {
		if errors.Is(err, arrivaldb.ErrInvalidDate) {
			api.validationErrorResponse(w, r, map[string][]string{"start": {err.Error()}})
			return
		}
		if errors.Is(err, arrivaldb.ErrUnavailable) {
			api.serviceUnavailableResponse(w, r, err)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	report := models.ComputeDeltas(loc, records)

	logging.LogOperation(logging.FromContext(r.Context()), "arrival_report_generated",
		slog.String("location", loc.Code()),
		slog.Int("rows", len(report.Rows)),
		slog.Int("total_minutes", report.TotalMinutes),
		slog.Duration("duration", time.Since(began)))

	api.sendResponse(w, r, models.NewEntryResponse(models.NewDeltaReportModel(report)))
}
