package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/arrivaldb"
	"arrivals.chinatownlogistic.com/internal/models"
)

// nopCloser keeps the shared in-memory database open across runs.
type nopCloser struct {
	*arrivaldb.Client
}

func (nopCloser) Close() error { return nil }

func TestRunAgainstSQLiteStore(t *testing.T) {
	client, err := arrivaldb.NewClient(context.Background(), arrivaldb.Config{
		Env:      appconf.Test,
		Database: appconf.DatabaseConfig{Driver: appconf.DriverSQLite, Path: ":memory:"},
		Zone:     time.UTC,
		Migrate:  true,
	}, nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	now := time.Date(2024, 3, 4, 9, 10, 0, 0, time.UTC)
	r := &Recorder{
		OpenStore: func(ctx context.Context) (Store, error) { return nopCloser{client}, nil },
		Now:       func() time.Time { return now },
		Zone:      time.UTC,
	}

	first, err := r.Run(context.Background(), "VISTO")
	require.NoError(t, err)
	assert.True(t, first.Inserted)

	now = now.Add(3 * time.Hour)
	second, err := r.Run(context.Background(), "VISTO")
	require.NoError(t, err)
	assert.False(t, second.Inserted)

	records, err := client.ArrivalsBetween(context.Background(), models.Visto, first.Date, first.Date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.NewTimeOfDay(9, 5, 0), *records[0].ArrivalTime)
}
