package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"arrivals.chinatownlogistic.com/internal/app"
	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/arrivaldb"
	"arrivals.chinatownlogistic.com/internal/logging"
	"arrivals.chinatownlogistic.com/internal/restapi"
)

func main() {
	// Database, time zone and notification settings come from the environment;
	// server settings come from flags.
	cfg, err := appconf.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var envFlag, apiKeysFlag string

	flag.IntVar(&cfg.Port, "port", 5000, "Report server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client on /api (0 disables)")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.ApiKeys = parseAPIKeys(apiKeysFlag)

	logger := logging.NewLogger(os.Stdout, cfg.Env)

	if err := run(cfg, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	client, err := openArrivalStore(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(client, logger, "arrival_store")

	application := &app.Application{
		Config:   cfg,
		Logger:   logger,
		Arrivals: client,
	}

	api := restapi.NewRestAPI(application)
	defer api.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      routes(application, api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "db_driver", cfg.Database.Driver)
	return srv.ListenAndServe()
}

// openArrivalStore returns a client even when the database cannot be reached yet;
// reports show the connection error until it is back. Only a bad configuration fails.
func openArrivalStore(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*arrivaldb.Client, error) {
	dbConfig := arrivaldb.NewConfig(cfg)
	dbConfig.Migrate = true

	client, err := arrivaldb.Open(dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open arrival store: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Init(ctx); err != nil {
		logging.LogError(logger, "arrival store not ready, serving anyway", err,
			slog.String("component", "arrival_store"))
	}
	return client, nil
}

func parseAPIKeys(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	keys := strings.Split(flagValue, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}
