package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"arrivals.chinatownlogistic.com/internal/app"
	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/arrivaldb"
	"arrivals.chinatownlogistic.com/internal/models"
)

// createTestApi creates a RestAPI backed by an in-memory store seeded with a few arrivals.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	client, err := arrivaldb.NewClient(context.Background(), arrivaldb.Config{
		Env:      appconf.Test,
		Database: appconf.DatabaseConfig{Driver: appconf.DriverSQLite, Path: ":memory:"},
		Zone:     time.UTC,
		Migrate:  true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, seed := range []struct {
		loc models.Location
		at  time.Time
	}{
		{models.Visto, time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)},  // Monday, expects 09:00
		{models.Visto, time.Date(2024, 3, 9, 9, 20, 0, 0, time.UTC)},  // Saturday, expects 09:30
		{models.SanJose, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)}, // other location
	} {
		require.NoError(t, client.InsertFirstArrival(context.Background(), models.NewFirstArrival(seed.loc, seed.at)))
	}

	application := &app.Application{
		Config: appconf.Config{
			Env:      appconf.Test,
			ApiKeys:  []string{"TEST"},
			Location: time.UTC,
		},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Arrivals: client,
	}

	return &RestAPI{Application: application}
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a request to the endpoint and
// decodes the response envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string]interface{}) {
	t.Helper()

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

type failingSource struct {
	err error
}

func (f failingSource) ArrivalsBetween(ctx context.Context, loc models.Location, start, end time.Time) ([]models.ArrivalRecord, error) {
	return nil, f.err
}
