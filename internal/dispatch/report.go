package dispatch

import "github.com/sidereusnuntius/hermes/internal/federation"

type State uint8

const (
	StateConstructed State = iota
	StateResolving
	StateDelivering
	StateCompleted
	StateCompletedWithFailures
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateResolving:
		return "resolving-recipients"
	case StateDelivering:
		return "delivering"
	case StateCompleted:
		return "completed"
	case StateCompletedWithFailures:
		return "completed-with-partial-failures"
	default:
		return "unknown"
	}
}

// Outcome describes a failed delivery. Recipient is the key of the local account or remote endpoint.
type Outcome struct {
	Recipient string
	Err       error
	Transient bool
}

func failure(recipient string, err error) Outcome {
	return Outcome{
		Recipient: recipient,
		Err:       err,
		Transient: federation.IsTransient(err),
	}
}

// Report summarizes a dispatch. Skipped holds the recipients that had already been settled by an earlier
// attempt of the same job.
type Report struct {
	Delivered []string
	Skipped   []string
	Failed    []Outcome
}

func (r Report) State() State {
	if len(r.Failed) == 0 {
		return StateCompleted
	}
	return StateCompletedWithFailures
}

// Retryable reports whether attempting the job again could reach a recipient that was not reached.
func (r Report) Retryable() bool {
	for _, o := range r.Failed {
		if o.Transient {
			return true
		}
	}
	return false
}

// Reason joins the failures that prevent the dispatch from completing.
func (r Report) Reason() string {
	var reason string
	for _, o := range r.Failed {
		if reason != "" {
			reason += "; "
		}
		reason += o.Recipient + ": " + o.Err.Error()
	}
	return reason
}
