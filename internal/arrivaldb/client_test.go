package arrivaldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	config := Config{
		Env: appconf.Test,
		Database: appconf.DatabaseConfig{
			Driver: appconf.DriverSQLite,
			Path:   ":memory:",
		},
		Zone:    time.UTC,
		Migrate: true,
	}
	client, err := NewClient(context.Background(), config, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewClientRejectsFileDatabaseInTests(t *testing.T) {
	config := Config{
		Env: appconf.Test,
		Database: appconf.DatabaseConfig{
			Driver: appconf.DriverSQLite,
			Path:   "arrivals.db",
		},
	}
	_, err := NewClient(context.Background(), config, nil)
	assert.Error(t, err)
}

func TestMigrationIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, performDatabaseMigration(context.Background(), client.DB, sqliteDDL))

	for _, loc := range models.AllLocations() {
		var name string
		err := client.DB.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", loc.Code()).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, loc.Code(), name)
	}
}

func TestInsertAndCheckFirstArrival(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	day := date(2024, 3, 4)

	exists, err := client.HasFirstArrival(ctx, models.Visto, day)
	require.NoError(t, err)
	assert.False(t, exists)

	record := models.NewFirstArrival(models.Visto, time.Date(2024, 3, 4, 8, 55, 0, 0, time.UTC))
	require.NoError(t, client.InsertFirstArrival(ctx, record))

	exists, err = client.HasFirstArrival(ctx, models.Visto, day)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.HasFirstArrival(ctx, models.SanJose, day)
	require.NoError(t, err)
	assert.False(t, exists, "tables are per location")

	exists, err = client.HasFirstArrival(ctx, models.Visto, date(2024, 3, 5))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInsertRequiresArrivalTime(t *testing.T) {
	client := newTestClient(t)
	err := client.InsertFirstArrival(context.Background(), models.ArrivalRecord{
		Location:   models.LoNuestro,
		Date:       date(2024, 3, 4),
		FirstOfDay: true,
	})
	assert.Error(t, err)
}

func TestUnknownLocation(t *testing.T) {
	client := newTestClient(t)

	_, err := client.HasFirstArrival(context.Background(), models.LocationUnknown, date(2024, 3, 4))
	assert.ErrorIs(t, err, models.ErrUnknownLocation)

	_, err = client.ArrivalsBetween(context.Background(), models.LocationUnknown, date(2024, 3, 1), date(2024, 3, 31))
	assert.ErrorIs(t, err, models.ErrUnknownLocation)
}

func TestArrivalsBetween(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, at := range []time.Time{
		time.Date(2024, 3, 5, 9, 15, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 8, 50, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 10, 2, 0, 0, time.UTC),
	} {
		require.NoError(t, client.InsertFirstArrival(ctx, models.NewFirstArrival(models.Visto, at)))
	}
	require.NoError(t, client.InsertFirstArrival(ctx,
		models.NewFirstArrival(models.SanJose, time.Date(2024, 3, 4, 7, 58, 0, 0, time.UTC))))

	_, err := client.DB.Exec("INSERT INTO VIS (fecha, hora_llegada, primera) VALUES ('2024-03-06', NULL, 1)")
	require.NoError(t, err)

	records, err := client.ArrivalsBetween(ctx, models.Visto, date(2024, 3, 4), date(2024, 3, 6))
	require.NoError(t, err)
	require.Len(t, records, 3, "end date is inclusive and other dates are excluded")

	assert.Equal(t, date(2024, 3, 4), records[0].Date)
	require.NotNil(t, records[0].ArrivalTime)
	assert.Equal(t, models.NewTimeOfDay(8, 50, 0), *records[0].ArrivalTime)
	assert.True(t, records[0].FirstOfDay)
	assert.Equal(t, models.Visto, records[0].Location)

	assert.Equal(t, date(2024, 3, 5), records[1].Date)
	assert.Nil(t, records[2].ArrivalTime, "NULL hora_llegada is kept as a record without time")

	records, err = client.ArrivalsBetween(ctx, models.Visto, date(2024, 4, 1), date(2024, 4, 30))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))

	err := classify(&mysql.MySQLError{Number: mysqlErrWrongValue, Message: "Incorrect DATE value"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	for _, down := range []error{
		mysql.ErrInvalidConn,
		driver.ErrBadConn,
		sql.ErrConnDone,
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
		errors.New("sql: database is closed"),
	} {
		assert.ErrorIs(t, classify(down), ErrUnavailable, down.Error())
	}

	other := errors.New("boom")
	assert.Equal(t, other, classify(other))
}

func TestMySQLDataSourceName(t *testing.T) {
	config := Config{Database: appconf.DatabaseConfig{
		Driver:   appconf.DriverMySQL,
		Host:     "db.local",
		User:     "arrivals",
		Password: "secret",
		Name:     "llegadas",
	}}
	assert.Contains(t, config.dataSourceName(), "arrivals:secret@tcp(db.local:3306)/llegadas")

	config.Database.Host = "db.local:3307"
	assert.Contains(t, config.dataSourceName(), "@tcp(db.local:3307)/")
}

func TestUnreachableStoreIsUnavailable(t *testing.T) {
	t.Run("mysql refuses connections", func(t *testing.T) {
		client, err := Open(Config{
			Env: appconf.Test,
			Database: appconf.DatabaseConfig{
				Driver: appconf.DriverMySQL,
				Host:   "127.0.0.1:1",
				User:   "arrivals",
				Name:   "llegadas",
			},
			Zone: time.UTC,
		}, nil)
		require.NoError(t, err, "opening does not dial")
		defer func() { _ = client.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err = client.ArrivalsBetween(ctx, models.Visto, date(2024, 3, 1), date(2024, 3, 31))
		assert.ErrorIs(t, err, ErrUnavailable)

		_, err = client.HasFirstArrival(ctx, models.Visto, date(2024, 3, 4))
		assert.ErrorIs(t, err, ErrUnavailable)

		assert.ErrorIs(t, client.Init(ctx), ErrUnavailable)
	})

	t.Run("closed sqlite client", func(t *testing.T) {
		client := newTestClient(t)
		require.NoError(t, client.Close())

		_, err := client.ArrivalsBetween(context.Background(), models.Visto, date(2024, 3, 1), date(2024, 3, 31))
		assert.ErrorIs(t, err, ErrUnavailable)

		err = client.InsertFirstArrival(context.Background(),
			models.NewFirstArrival(models.Visto, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)))
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestMigrationIsOptIn(t *testing.T) {
	client, err := NewClient(context.Background(), Config{
		Env:      appconf.Test,
		Database: appconf.DatabaseConfig{Driver: appconf.DriverSQLite, Path: ":memory:"},
		Zone:     time.UTC,
	}, nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	var count int
	require.NoError(t, client.DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'VIS'").Scan(&count))
	assert.Zero(t, count, "no DDL without Migrate")
}

func TestArrivalsBetweenReversedRangeIsEmpty(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.InsertFirstArrival(context.Background(),
		models.NewFirstArrival(models.Visto, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))))

	records, err := client.ArrivalsBetween(context.Background(), models.Visto, date(2024, 3, 31), date(2024, 3, 1))
	require.NoError(t, err)
	assert.Empty(t, records)
}
