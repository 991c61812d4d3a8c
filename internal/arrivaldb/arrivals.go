package arrivaldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"arrivals.chinatownlogistic.com/internal/logging"
	"arrivals.chinatownlogistic.com/internal/models"
)

// Table names come from the closed Location set, never from user input.
func tableFor(loc models.Location) (string, error) {
	if !loc.Valid() {
		return "", models.ErrUnknownLocation
	}
	return loc.Code(), nil
}

// HasFirstArrival reports whether a first-of-day row already exists for the date.
func (c *Client) HasFirstArrival(ctx context.Context, loc models.Location, date time.Time) (bool, error) {
	table, err := tableFor(loc)
	if err != nil {
		return false, err
	}
	if err := c.ensureSchema(ctx); err != nil {
		return false, err
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE fecha = ? AND primera = TRUE", table)

	var count int
	if err := c.DB.QueryRowContext(ctx, query, date.Format(models.DateLayout)).Scan(&count); err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

// InsertFirstArrival writes record as the first arrival of its day. It does not check
// for an existing row; callers pair it with HasFirstArrival.
func (c *Client) InsertFirstArrival(ctx context.Context, record models.ArrivalRecord) error {
	table, err := tableFor(record.Location)
	if err != nil {
		return err
	}
	if err := c.ensureSchema(ctx); err != nil {
		return err
	}
	if record.ArrivalTime == nil {
		return fmt.Errorf("arrival for %s on %s has no time", table, record.Date.Format(models.DateLayout))
	}

	query := fmt.Sprintf("INSERT INTO %s (fecha, hora_llegada, primera) VALUES (?, ?, TRUE)", table)
	if _, err := c.DB.ExecContext(ctx, query,
		record.Date.Format(models.DateLayout),
		record.ArrivalTime.String(),
	); err != nil {
		return classify(err)
	}

	logging.LogOperation(c.logger, "first_arrival_inserted",
		slog.String("location", table),
		slog.String("fecha", record.Date.Format(models.DateLayout)),
		slog.String("hora_llegada", record.ArrivalTime.String()))
	return nil
}

// ArrivalsBetween returns the stored arrivals for loc with start <= fecha <= end,
// ordered by date.
func (c *Client) ArrivalsBetween(ctx context.Context, loc models.Location, start, end time.Time) ([]models.ArrivalRecord, error) {
	table, err := tableFor(loc)
	if err != nil {
		return nil, err
	}
	if err := c.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT fecha, hora_llegada, primera FROM %s WHERE fecha BETWEEN ? AND ? ORDER BY fecha, hora_llegada",
		table)

	rows, err := c.DB.QueryContext(ctx, query, start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return nil, classify(err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "arrival_rows")

	var records []models.ArrivalRecord
	for rows.Next() {
		var (
			fecha   string
			hora    sql.NullString
			primera bool
		)
		if err := rows.Scan(&fecha, &hora, &primera); err != nil {
			return nil, classify(err)
		}

		record, err := c.decodeRow(loc, fecha, hora, primera)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return records, nil
}

func (c *Client) decodeRow(loc models.Location, fecha string, hora sql.NullString, primera bool) (models.ArrivalRecord, error) {
	// DATE columns may come back with a time suffix depending on the driver
	if len(fecha) > len(models.DateLayout) {
		fecha = fecha[:len(models.DateLayout)]
	}
	date, err := time.ParseInLocation(models.DateLayout, fecha, c.config.zone())
	if err != nil {
		return models.ArrivalRecord{}, fmt.Errorf("bad fecha %q in %s: %w", fecha, loc.Code(), err)
	}

	record := models.ArrivalRecord{
		Location:   loc,
		Date:       date,
		FirstOfDay: primera,
	}

	if hora.Valid {
		tod, err := models.ParseTimeOfDay(hora.String)
		if err != nil {
			c.logger.Warn("unreadable hora_llegada",
				slog.String("location", loc.Code()),
				slog.String("fecha", fecha),
				slog.String("value", hora.String))
		} else {
			record.ArrivalTime = &tod
		}
	}

	return record, nil
}
