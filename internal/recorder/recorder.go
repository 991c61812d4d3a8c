// Package recorder logs the first arrival of the day for the workstation it runs on.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arrivals.chinatownlogistic.com/internal/logging"
	"arrivals.chinatownlogistic.com/internal/models"
)

// CorrectionOffset is subtracted from the start-up instant; the machine is usually
// switched on a few minutes after the person walks in.
const CorrectionOffset = 5 * time.Minute

const PopupTitle = "Hora de Llegada"

// Store persists first-of-day arrivals.
type Store interface {
	HasFirstArrival(ctx context.Context, loc models.Location, date time.Time) (bool, error)
	InsertFirstArrival(ctx context.Context, record models.ArrivalRecord) error
	Close() error
}

type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type Popup interface {
	Show(title, message string) error
}

type Connectivity interface {
	WaitForConnectivity(ctx context.Context) error
}

// Recorder wires the ports used by a single run.
type Recorder struct {
	// OpenStore is only called once the machine is known and online.
	OpenStore    func(ctx context.Context) (Store, error)
	Notifier     Notifier
	Popup        Popup
	Connectivity Connectivity
	Now          func() time.Time
	Zone         *time.Location
	Logger       *slog.Logger
}

// Result describes what a run did.
type Result struct {
	Location    models.Location
	Date        time.Time
	ArrivalTime models.TimeOfDay
	Inserted    bool
	Notified    bool
}

// Run records the arrival for machineName. Unknown machines and store failures are
// returned as errors; notification and popup failures are only logged.
func (r *Recorder) Run(ctx context.Context, machineName string) (Result, error) {
	loc, ok := models.LocationFromMachineName(machineName)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", models.ErrUnknownMachine, machineName)
	}

	logger := r.logger().With(slog.String("location", loc.Code()), slog.String("machine", machineName))

	if r.Connectivity != nil {
		if err := r.Connectivity.WaitForConnectivity(ctx); err != nil {
			return Result{}, fmt.Errorf("waiting for connectivity: %w", err)
		}
	}

	record := models.NewFirstArrival(loc, r.arrivalInstant())
	result := Result{
		Location:    loc,
		Date:        record.Date,
		ArrivalTime: *record.ArrivalTime,
	}

	inserted, err := r.store(ctx, record)
	if err != nil {
		logging.LogError(logger, "failed to record arrival", err, slog.String("component", "recorder"))
		return result, err
	}
	result.Inserted = inserted

	formatted := result.ArrivalTime.Format12h()

	if r.Notifier != nil {
		if err := r.Notifier.Notify(ctx, NotificationMessage(machineName, result.ArrivalTime)); err != nil {
			logger.Warn("arrival notification failed", slog.String("error", err.Error()))
		} else {
			result.Notified = true
		}
	}

	if r.Popup != nil {
		if err := r.Popup.Show(PopupTitle, PopupMessage(result.ArrivalTime)); err != nil {
			logger.Warn("arrival popup failed", slog.String("error", err.Error()))
		}
	}

	logging.LogOperation(logger, "arrival_run_completed",
		slog.String("fecha", record.Date.Format(models.DateLayout)),
		slog.String("hora_llegada", formatted),
		slog.Bool("inserted", result.Inserted),
		slog.Bool("notified", result.Notified))

	return result, nil
}

// store inserts record unless the day already has a first arrival. The check and the
// insert are separate statements; two simultaneous runs can both insert.
func (r *Recorder) store(ctx context.Context, record models.ArrivalRecord) (bool, error) {
	if r.OpenStore == nil {
		return false, fmt.Errorf("no arrival store configured")
	}

	store, err := r.OpenStore(ctx)
	if err != nil {
		return false, fmt.Errorf("opening arrival store: %w", err)
	}
	defer logging.SafeCloseWithLogging(store, r.logger(), "arrival_store")

	exists, err := store.HasFirstArrival(ctx, record.Location, record.Date)
	if err != nil {
		return false, fmt.Errorf("checking first arrival: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := store.InsertFirstArrival(ctx, record); err != nil {
		return false, fmt.Errorf("inserting first arrival: %w", err)
	}
	return true, nil
}

func (r *Recorder) arrivalInstant() time.Time {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	zone := r.Zone
	if zone == nil {
		zone = time.Local
	}
	return now().In(zone).Add(-CorrectionOffset)
}

func (r *Recorder) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// NotificationMessage formats the chat message, e.g. "VISTO - 08:55 AM.".
func NotificationMessage(machineName string, at models.TimeOfDay) string {
	return fmt.Sprintf("%s - %s.", machineName, at.Format12h())
}

func PopupMessage(at models.TimeOfDay) string {
	return fmt.Sprintf("La hora %s ha sido tomada como su hora de llegada.", at.Format12h())
}
