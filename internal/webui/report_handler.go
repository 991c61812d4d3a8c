package webui

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"arrivals.chinatownlogistic.com/internal/arrivaldb"
	"arrivals.chinatownlogistic.com/internal/logging"
	"arrivals.chinatownlogistic.com/internal/models"
	"arrivals.chinatownlogistic.com/internal/utils"
)

const (
	msgMissingDates    = "Por favor, ingresa ambas fechas."
	msgInvalidDates    = "Por favor, ingresa fechas válidas."
	msgInvalidLocation = "Selecciona un local válido."
	msgNoRecords       = "No se encontraron registros en el rango de fechas especificado."
	msgBadRequest      = "Solicitud inválida."
	msgDatabaseError   = "Error de conexión a la base de datos: %v"

	missingValue = "N/D"
)

type formValues struct {
	Local string
	Start string
	End   string
}

type rowView struct {
	Date     string
	Arrival  string
	Expected string
	Delta    string
}

type reportView struct {
	Location     string
	Rows         []rowView
	TotalMinutes int
	Hours        int
	Minutes      int
}

type pageData struct {
	Locations []string
	Form      formValues
	Error     string
	Report    *reportView
}

func newPageData(form formValues) pageData {
	locations := models.AllLocations()
	names := make([]string, 0, len(locations))
	for _, loc := range locations {
		names = append(names, loc.DisplayName())
	}
	return pageData{Locations: names, Form: form}
}

func newReportView(report models.DeltaReport) *reportView {
	view := &reportView{
		Location:     report.Location.DisplayName(),
		Rows:         make([]rowView, 0, len(report.Rows)),
		TotalMinutes: report.TotalMinutes,
		Hours:        report.Hours(),
		Minutes:      report.Minutes(),
	}

	for _, row := range report.Rows {
		rv := rowView{
			Date:     models.FormatReportDate(row.Date),
			Arrival:  missingValue,
			Expected: missingValue,
			Delta:    missingValue,
		}
		if row.Actual != nil {
			rv.Arrival = row.Actual.Format12h()
		}
		if row.Expected != nil {
			rv.Expected = row.Expected.Format12h()
		}
		if row.Delta != nil {
			rv.Delta = strconv.Itoa(*row.Delta)
		}
		view.Rows = append(view.Rows, rv)
	}

	return view
}

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	webUI.render(w, r, "index.html", newPageData(formValues{}))
}

// reportHandler validates the form, loads the arrivals for the range and renders the
// delta table. Every failure is shown on the page rather than as an HTTP error.
func (webUI *WebUI) reportHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := newPageData(formValues{})
		data.Error = msgBadRequest
		webUI.render(w, r, "index.html", data)
		return
	}

	form := formValues{
		Local: utils.SanitizeInput(r.PostForm.Get("local")),
		Start: utils.SanitizeInput(r.PostForm.Get("fecha_inicio")),
		End:   utils.SanitizeInput(r.PostForm.Get("fecha_fin")),
	}
	data := newPageData(form)

	report, message := webUI.buildReport(r, form)
	if message != "" {
		data.Error = message
	} else {
		data.Report = newReportView(report)
	}

	webUI.render(w, r, "index.html", data)
}

func (webUI *WebUI) buildReport(r *http.Request, form formValues) (models.DeltaReport, string) {
	if form.Start == "" || form.End == "" {
		return models.DeltaReport{}, msgMissingDates
	}

	loc, ok := models.LocationFromDisplayName(form.Local)
	if !ok {
		return models.DeltaReport{}, msgInvalidLocation
	}

	// A reversed range is not an error here; the inclusive range query simply finds
	// nothing and the page reports no records.
	start, err := utils.ParseDate(form.Start, webUI.Zone())
	if err != nil {
		return models.DeltaReport{}, msgInvalidDates
	}
	end, err := utils.ParseDate(form.End, webUI.Zone())
	if err != nil {
		return models.DeltaReport{}, msgInvalidDates
	}

	logger := logging.FromContext(r.Context())
	began := time.Now()

	records, err := webUI.Arrivals.ArrivalsBetween(r.Context(), loc, start, end)
	if err != nil {
		if errors.Is(err, arrivaldb.ErrInvalidDate) {
			return models.DeltaReport{}, msgInvalidDates
		}
		logging.LogError(logger, "failed to load arrivals", err, slog.String("location", loc.Code()))
		return models.DeltaReport{}, fmt.Sprintf(msgDatabaseError, err)
	}
	if len(records) == 0 {
		return models.DeltaReport{}, msgNoRecords
	}

	report := models.ComputeDeltas(loc, records)
	logging.LogOperation(logger, "arrival_report_generated",
		slog.String("location", loc.Code()),
		slog.Int("rows", len(report.Rows)),
		slog.Int("total_minutes", report.TotalMinutes),
		slog.Duration("duration", time.Since(began)))

	return report, ""
}
