// Package worker drains buffered audit events to a publisher in the
// background, keeping event delivery off the action path.
package worker

import (
	"context"

	audit "github.com/Eklavvyaaaaa/Carbonx/pkg/platform/audit"
)

// Worker consumes audit events from a channel and forwards them to the
// configured sink.
type Worker struct {
	sink  audit.Publisher
	inbox <-chan audit.Event
}

// New creates a worker draining inbox into sink.
func New(sink audit.Publisher, inbox <-chan audit.Event) *Worker {
	return &Worker{sink: sink, inbox: inbox}
}

// Run forwards events until the context is cancelled. Sink errors stop the
// worker so the supervising errgroup can surface them.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Emit(ctx, event); err != nil {
				return err
			}
		}
	}
}
