// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"georef/pkg/platform/httputil"
)

const checkTimeout = 2 * time.Second

// Check probes one dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Status is the readiness response body.
type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Live always answers 200 while the process serves HTTP.
func Live(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Status{Status: "ok", Checks: map[string]string{}})
}

// Ready runs every check concurrently and answers 503 if any fails.
func Ready(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		results := make([]string, len(checks))
		var g errgroup.Group
		for i, c := range checks {
			g.Go(func() error {
				if err := c.Probe(ctx); err != nil {
					results[i] = "unavailable"
					return err
				}
				results[i] = "ok"
				return nil
			})
		}
		err := g.Wait()

		body := Status{Status: "ok", Checks: make(map[string]string, len(checks))}
		for i, c := range checks {
			body.Checks[c.Name] = results[i]
		}
		status := http.StatusOK
		if err != nil {
			body.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, body)
	}
}
