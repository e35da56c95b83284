package errors

import (
	"errors"
	"fmt"
)

// Kind names one of the seven documented error categories, each with
// its own handling policy (retry, reject-and-halt, escalate, ...).
type Kind uint8

const (
	KindUnknown Kind = iota
	// TransportError: venue connectivity/protocol failure. Policy: retry
	// with backoff, or mark the venue down.
	TransportError
	// StaleData: a snapshot or quote older than its freshness budget.
	// Policy: refuse to act on it.
	StaleData
	// VenueReject: the venue explicitly rejected an order. Policy: never
	// retried automatically; a fresh signal must re-trigger.
	VenueReject
	// Timeout: an operation exceeded its bounded deadline. Policy: unwind
	// or fail per the caller's state machine.
	Timeout
	// LegRisk: an operation would violate the no-legging invariant.
	// Policy: escalate to unwind.
	LegRisk
	// ConfigError: a misconfiguration detected at startup or reload.
	// Policy: refuse to start, or ignore the reload.
	ConfigError
	// ProgrammerError: an invariant the caller itself violated (bad
	// arguments, duplicate IDs). Policy: never expected in production;
	// surfaced loudly.
	ProgrammerError
)

func (k Kind) String() string {
	switch k {
	case TransportError:
		return "transport_error"
	case StaleData:
		return "stale_data"
	case VenueReject:
		return "venue_reject"
	case Timeout:
		return "timeout"
	case LegRisk:
		return "leg_risk"
	case ConfigError:
		return "config_error"
	case ProgrammerError:
		return "programmer_error"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	err  error
	msg  string
}

func (e *kindError) Error() string {
	if e.err == nil {
		return e.kind.String() + ": " + e.msg
	}
	return e.kind.String() + ": " + e.msg + sep + e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

// NewKind creates a new error tagged with a taxonomy kind.
func NewKind(kind Kind, text string) error {
	return &kindError{kind: kind, msg: text}
}

// Newf creates a new kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WrapKind wraps err with a taxonomy kind and message.
func WrapKind(kind Kind, err error, text string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err, msg: text}
}

// Is reports whether err (or anything it wraps) is tagged with kind.
func Is(err error, kind Kind) bool {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind == kind
	}
	return false
}
