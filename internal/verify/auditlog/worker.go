package auditlog

import (
	"context"
	"log/slog"
)

// Worker decouples audit appends from request latency: Append enqueues, a
// background goroutine drains into the wrapped store. When the buffer is
// full the row is dropped and counted rather than blocking a verification.
type Worker struct {
	store  Store
	queue  chan Row
	logger *slog.Logger

	done chan struct{}
}

func NewWorker(store Store, buffer int, logger *slog.Logger) *Worker {
	if buffer <= 0 {
		buffer = 1024
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		store:  store,
		queue:  make(chan Row, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled, then flushes what remains.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.done)
	for {
		select {
		case row := <-w.queue:
			w.flush(row)
		case <-ctx.Done():
			for {
				select {
				case row := <-w.queue:
					w.flush(row)
				default:
					return ctx.Err()
				}
			}
		}
	}
}

func (w *Worker) flush(row Row) {
	if err := w.store.Append(context.Background(), row); err != nil {
		w.logger.Error("auditlog: worker append failed", "service", row.Service, "error", err)
	}
}

func (w *Worker) Append(_ context.Context, row Row) error {
	select {
	case w.queue <- row:
	default:
		w.logger.Warn("auditlog: queue full, dropping row", "service", row.Service)
	}
	return nil
}

// Wait blocks until Run has returned.
func (w *Worker) Wait() {
	<-w.done
}
