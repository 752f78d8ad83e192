package domain

// ProgressFunc reports batch progress to the frontend after each completed
// item: (1, 5), (2, 5), ... Counts are monotonically increasing. The callback
// runs on the fetch goroutine and must return promptly; frontends that render
// asynchronously should hand the counts off (e.g. into a message queue)
// instead of blocking here.
type ProgressFunc func(completed, total int)

// BatchOutcome is the terminal state of a price fetch batch.
type BatchOutcome int

const (
	// OutcomeComplete means every queued item was fetched.
	OutcomeComplete BatchOutcome = iota
	// OutcomeCanceled means the caller canceled mid-batch; items fetched
	// before the cancellation keep their values and were persisted.
	OutcomeCanceled
	// OutcomeFailed means a network failure aborted the batch.
	OutcomeFailed
)

func (o BatchOutcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BatchResult summarizes a price fetch batch.
type BatchResult struct {
	Server    string       // population the batch ran against
	Total     int          // items queued for a network fetch
	Completed int          // items actually fetched
	FromCache int          // items satisfied entirely from cache
	Outcome   BatchOutcome
}
