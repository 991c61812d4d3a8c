package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/arrivaldb"
	"arrivals.chinatownlogistic.com/internal/logging"
	"arrivals.chinatownlogistic.com/internal/netcheck"
	"arrivals.chinatownlogistic.com/internal/notify"
	"arrivals.chinatownlogistic.com/internal/popup"
	"arrivals.chinatownlogistic.com/internal/recorder"
)

// rootOptions holds the flags of the recorder command.
type rootOptions struct {
	Machine  string
	Env      string
	NoPopup  bool
	NoNotify bool
}

func newRootCommand(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "recorder",
		Short: "Record the first arrival of the day for this workstation",
		Long: `Waits until the network is reachable, stores today's first arrival for the
location this machine belongs to, sends a chat notification and shows a
confirmation popup.

Example:
  recorder
  recorder --machine LO-NUESTRO --no-popup`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecorder(cmd.Context(), opts, getenv, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Machine, "machine", "", "machine name used to pick the location (default: hostname)")
	cmd.Flags().StringVar(&opts.Env, "env", "production", "environment (development|test|production)")
	cmd.Flags().BoolVar(&opts.NoPopup, "no-popup", false, "do not show the desktop confirmation")
	cmd.Flags().BoolVar(&opts.NoNotify, "no-notify", false, "skip the chat notification")

	return cmd
}

func runRecorder(ctx context.Context, opts *rootOptions, getenv func(string) string, cmd *cobra.Command) error {
	machine, err := machineName(opts.Machine)
	if err != nil {
		return err
	}

	cfg, err := appconf.FromEnv(getenv)
	if err != nil {
		return err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(opts.Env)

	logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.Env).With(slog.String("component", "recorder"))

	rec := &recorder.Recorder{
		OpenStore: func(ctx context.Context) (recorder.Store, error) {
			client, err := arrivaldb.NewClient(ctx, storeConfig(cfg), logger)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		Connectivity: netcheck.NewChecker(cfg.ConnectivityURL, logger),
		Zone:         cfg.Location,
		Logger:       logger,
	}
	if !opts.NoNotify {
		rec.Notifier = notify.NewTelegram(cfg.Telegram, logger)
	}
	if !opts.NoPopup {
		rec.Popup = popup.Desktop{}
	}

	result, err := rec.Run(ctx, machine)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), recorder.PopupMessage(result.ArrivalTime))
	return nil
}

// storeConfig leaves migration off: the tables are created by the report server and
// workstation accounts only need SELECT and INSERT.
func storeConfig(cfg appconf.Config) arrivaldb.Config {
	dbConfig := arrivaldb.NewConfig(cfg)
	dbConfig.Migrate = false
	return dbConfig
}

// machineName returns the flag value, or the hostname when it is empty.
func machineName(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	host, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("resolving hostname: %w", err)
	}
	return host, nil
}
