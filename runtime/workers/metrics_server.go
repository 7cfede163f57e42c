package workers

import (
	"context"
	goerrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// MetricsServerWorker exposes the prometheus registry on /metrics.
type MetricsServerWorker struct {
	log      *slog.Logger
	addr     string
	gatherer prometheus.Gatherer
}

func NewMetricsServerWorker(log *slog.Logger, addr string, gatherer prometheus.Gatherer) *MetricsServerWorker {
	return &MetricsServerWorker{log: log, addr: addr, gatherer: gatherer}
}

func (w *MetricsServerWorker) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(w.gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: w.addr, Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting metrics server", "address", w.addr)
		if err := server.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
