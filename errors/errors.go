package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failed quote.
type Kind string

const (
	KindUnknownPrison       Kind = "UNKNOWN_PRISON"
	KindInvalidEnum         Kind = "INVALID_ENUM"
	KindOutOfRange          Kind = "OUT_OF_RANGE"
	KindInconsistentRequest Kind = "INCONSISTENT_REQUEST"
	KindEmptyProduction     Kind = "EMPTY_PRODUCTION"
	KindInternal            Kind = "INTERNAL"
)

// Sentinels wrapped by QuoteError, one per Kind.
var (
	ErrUnknownPrison       = fmt.Errorf("unknown prison")
	ErrInvalidEnum         = fmt.Errorf("invalid enum value")
	ErrOutOfRange          = fmt.Errorf("value out of range")
	ErrInconsistentRequest = fmt.Errorf("inconsistent request")
	ErrEmptyProduction     = fmt.Errorf("empty production")
	ErrInternal            = fmt.Errorf("internal error")
)

var sentinels = map[Kind]error{
	KindUnknownPrison:       ErrUnknownPrison,
	KindInvalidEnum:         ErrInvalidEnum,
	KindOutOfRange:          ErrOutOfRange,
	KindInconsistentRequest: ErrInconsistentRequest,
	KindEmptyProduction:     ErrEmptyProduction,
	KindInternal:            ErrInternal,
}

// QuoteError is a precondition failure on a quote request.
type QuoteError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *QuoteError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Field, e.Err)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

// New builds a QuoteError whose cause wraps the sentinel for kind.
func New(kind Kind, field, format string, args ...any) *QuoteError {
	sentinel, ok := sentinels[kind]
	if !ok {
		sentinel = ErrInternal
		kind = KindInternal
	}
	return &QuoteError{
		Kind:  kind,
		Field: field,
		Err:   fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

// KindOf classifies err. Errors outside the taxonomy are INTERNAL.
func KindOf(err error) Kind {
	var qe *QuoteError
	if stderrors.As(err, &qe) {
		return qe.Kind
	}
	for kind, sentinel := range sentinels {
		if stderrors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	if e.Record == nil {
		return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Input-sheet errors.
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidNumber     = fmt.Errorf("invalid number")
	ErrInvalidDate       = fmt.Errorf("invalid date")
	ErrInvalidDocument   = fmt.Errorf("invalid document")
)
