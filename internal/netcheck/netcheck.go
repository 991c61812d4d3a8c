// Package netcheck blocks until an HTTP endpoint answers, signalling that the machine
// is online.
package netcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"arrivals.chinatownlogistic.com/internal/logging"
)

const (
	DefaultInterval     = time.Second
	DefaultProbeTimeout = time.Second
)

// Checker probes URL until it returns 200 OK.
type Checker struct {
	URL      string
	Client   *http.Client
	Interval time.Duration
	Logger   *slog.Logger
}

func NewChecker(url string, logger *slog.Logger) *Checker {
	return &Checker{
		URL:      url,
		Client:   &http.Client{Timeout: DefaultProbeTimeout},
		Interval: DefaultInterval,
		Logger:   logger,
	}
}

// Probe makes a single request and returns nil when the endpoint answered 200.
func (c *Checker) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return backoff.Permanent(err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.Logger, "connectivity_probe")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connectivity probe %s returned %d", c.URL, resp.StatusCode)
	}
	return nil
}

// WaitForConnectivity retries Probe at a fixed interval with no attempt limit. It only
// gives up when ctx is done or the probe URL itself is malformed.
func (c *Checker) WaitForConnectivity(ctx context.Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		return c.Probe(ctx)
	}, policy, func(err error, next time.Duration) {
		if c.Logger != nil {
			c.Logger.Debug("waiting for connectivity",
				slog.String("url", c.URL),
				slog.String("error", err.Error()),
				slog.Duration("retry_in", next))
		}
	})
	if err != nil {
		return err
	}

	logging.LogOperation(c.Logger, "connectivity_available",
		slog.String("url", c.URL),
		slog.Int("attempts", attempts))
	return nil
}
