// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// Kind groups pipeline errors by the phase that produced them.
type Kind string

const (
	KindUnknown  Kind = "unknown"
	KindConfig   Kind = "config"
	KindFetch    Kind = "fetch"
	KindPersist  Kind = "persist"
	KindTracking Kind = "tracking"
)

// ErrInvalidPageLimit is returned when the feed page limit is not a positive integer.
type ErrInvalidPageLimit struct {
	Limit int
}

func (e *ErrInvalidPageLimit) Error() string {
	return fmt.Sprintf("invalid page limit: %d, expected a positive integer", e.Limit)
}

func (e *ErrInvalidPageLimit) Kind() Kind { return KindConfig }

// TransportError is returned when the feed could not be reached at all
// (DNS, connection refused, timeout, cancelled request).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() Kind { return KindFetch }

// HTTPStatusError is returned when the feed answered with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("feed %s returned HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("feed %s returned HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *HTTPStatusError) Kind() Kind { return KindFetch }

// ProtocolError is returned when the feed answered successfully but the body
// was not a sequence of event documents.
type ProtocolError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("unexpected response from %s: %s", e.URL, e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func (e *ProtocolError) Kind() Kind { return KindFetch }

// PersistenceError is returned when writing events inside the persist transaction fails.
// EventID is empty when the failure is not tied to a single event (begin, commit).
type PersistenceError struct {
	Op      string
	EventID string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.EventID != "" {
		return fmt.Sprintf("persistence error during %s (event %s): %v", e.Op, e.EventID, e.Err)
	}
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Kind() Kind { return KindPersist }

// RunTrackingError is returned when a pipeline_runs row could not be written.
type RunTrackingError struct {
	Op    string
	RunID string
	Err   error
}

func (e *RunTrackingError) Error() string {
	return fmt.Sprintf("run tracking error during %s (run %s): %v", e.Op, e.RunID, e.Err)
}

func (e *RunTrackingError) Unwrap() error { return e.Err }

func (e *RunTrackingError) Kind() Kind { return KindTracking }

// ErrRunNotStarted is wrapped by RunTrackingError when a terminal update matched
// no run in STARTED state.
var ErrRunNotStarted = errors.New("run not found or already finished")

type kinded interface {
	Kind() Kind
}

// KindOf reports the phase of the first tagged error in err's chain.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsFetch reports whether err originated while fetching from the feed.
func IsFetch(err error) bool { return KindOf(err) == KindFetch }
