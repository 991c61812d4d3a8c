package models

// ArrivalDeltaModel is the JSON form of a DeltaRow.
type ArrivalDeltaModel struct {
	Date         string `json:"date"`
	ArrivalTime  string `json:"arrivalTime,omitempty"`
	ExpectedTime string `json:"expectedTime,omitempty"`
	DeltaMinutes *int   `json:"deltaMinutes"`
}

// DeltaReportModel is the JSON form of a DeltaReport.
type DeltaReportModel struct {
	LocationCode string              `json:"locationCode"`
	LocationName string              `json:"locationName"`
	Arrivals     []ArrivalDeltaModel `json:"arrivals"`
	TotalMinutes int                 `json:"totalMinutes"`
	TotalHours   int                 `json:"totalHours"`
	// RemainderMinutes is the minutes part of the floor-division split of TotalMinutes.
	RemainderMinutes int `json:"remainderMinutes"`
}

func NewDeltaReportModel(report DeltaReport) DeltaReportModel {
	arrivals := make([]ArrivalDeltaModel, 0, len(report.Rows))
	for _, row := range report.Rows {
		m := ArrivalDeltaModel{
			Date:         row.Date.Format(DateLayout),
			DeltaMinutes: row.Delta,
		}
		if row.Actual != nil {
			m.ArrivalTime = row.Actual.String()
		}
		if row.Expected != nil {
			m.ExpectedTime = row.Expected.String()
		}
		arrivals = append(arrivals, m)
	}

	return DeltaReportModel{
		LocationCode:     report.Location.Code(),
		LocationName:     report.Location.DisplayName(),
		Arrivals:         arrivals,
		TotalMinutes:     report.TotalMinutes,
		TotalHours:       report.Hours(),
		RemainderMinutes: report.Minutes(),
	}
}
