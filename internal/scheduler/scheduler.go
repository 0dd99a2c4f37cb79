// Package scheduler runs deferred jobs, such as releasing a caretaker from
// buffer after a completed visit.
package scheduler

import (
	"context"
	"time"
)

type Handler func(ctx context.Context, payload []byte) error

type Scheduler interface {
	// Handle registers the handler for a job kind. Register before scheduling.
	Handle(kind string, h Handler)
	Schedule(ctx context.Context, kind string, payload []byte, delay time.Duration) (string, error)
	// Cancel drops a pending job. Unknown or already-run ids are not an error.
	Cancel(ctx context.Context, id string) error
}
