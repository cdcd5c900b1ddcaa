package driving

import "context"

// Scheduler runs maintenance tasks such as cache pruning and log retention.
type Scheduler interface {
	// Start registers tasks and runs them until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error
}
