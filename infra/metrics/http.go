package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetmind/driverguide/infra/logger"
)

// StartPromServer exposes the Prometheus metrics endpoint on addr until the
// context is canceled. The handler gets its own ServeMux so it never collides
// with other HTTP surfaces in the process.
func StartPromServer(ctx context.Context, addr string) error {
	logg := logger.New("prom-server")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Warnf("shutdown: %v", err)
		}
	}()
	logg.Infof("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
