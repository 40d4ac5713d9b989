package reservation

import (
	"errors"
	"strings"
)

const MaxReasonLength = 500

var (
	ErrBlankReason   = errors.New("reason must not be blank")
	ErrReasonTooLong = errors.New("reason exceeds maximum length")
)

// Reason is a mandatory operator-supplied explanation attached to
// reject and delete transitions.
type Reason struct {
	value string
}

func NewReason(s string) (Reason, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Reason{}, ErrBlankReason
	}
	if len(trimmed) > MaxReasonLength {
		return Reason{}, ErrReasonTooLong
	}
	return Reason{value: trimmed}, nil
}

func (r Reason) String() string { return r.value }
