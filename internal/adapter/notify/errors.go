package notify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is returned by constructors when a channel is misconfigured.
	ErrInvalidConfig = errors.New("invalid notifier config")
	// ErrCircuitOpen is reported when a channel is failing fast after repeated errors.
	ErrCircuitOpen = errors.New("circuit open")
)

// SendError reports a failed delivery together with every underlying cause.
type SendError struct {
	Channel string
	Causes  []error
}

func (e *SendError) Error() string {
	msgs := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		msgs = append(msgs, c.Error())
	}
	return fmt.Sprintf("send %s notification: %d cause(s): %s", e.Channel, len(e.Causes), strings.Join(msgs, "; "))
}

func (e *SendError) Unwrap() []error {
	return e.Causes
}

// StatusError is returned when the remote end answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote returned %d", e.StatusCode)
	}
	return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Body)
}

// Flatten expands joined errors into their leaf causes, depth first.
// A join hidden behind %w wrapping is expanded too; a chain without any
// join yields the error itself. nil yields none.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		multi, ok := e.(interface{ Unwrap() []error })
		if !ok {
			continue
		}
		var out []error
		for _, inner := range multi.Unwrap() {
			out = append(out, Flatten(inner)...)
		}
		return out
	}
	return []error{err}
}
