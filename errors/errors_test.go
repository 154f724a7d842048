package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	customerrors "workshop-quote/errors"
)

func TestNew(t *testing.T) {
	err := customerrors.New(customerrors.KindOutOfRange, "effective_pct", "%v is outside [0,100]", 120.0)

	assert.Equal(t, customerrors.KindOutOfRange, err.Kind)
	assert.Equal(t, "effective_pct", err.Field)
	assert.ErrorIs(t, err, customerrors.ErrOutOfRange)
	assert.Equal(t, "OUT_OF_RANGE: effective_pct: value out of range: 120 is outside [0,100]", err.Error())
}

func TestNew_UnknownKindIsInternal(t *testing.T) {
	err := customerrors.New("BOGUS", "", "oops")
	assert.Equal(t, customerrors.KindInternal, err.Kind)
	assert.ErrorIs(t, err, customerrors.ErrInternal)
	assert.Equal(t, "INTERNAL: internal error: oops", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected customerrors.Kind
	}{
		"QuoteError": {
			err:      customerrors.New(customerrors.KindUnknownPrison, "prison", "%q", "Nowhere"),
			expected: customerrors.KindUnknownPrison,
		},
		"WrappedQuoteError": {
			err:      fmt.Errorf("quoting: %w", customerrors.New(customerrors.KindEmptyProduction, "items", "none")),
			expected: customerrors.KindEmptyProduction,
		},
		"BareSentinel": {
			err:      fmt.Errorf("%w: hours", customerrors.ErrInconsistentRequest),
			expected: customerrors.KindInconsistentRequest,
		},
		"Foreign": {
			err:      errors.New("disk on fire"),
			expected: customerrors.KindInternal,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, customerrors.KindOf(tt.err))
		})
	}
}

func TestParseError(t *testing.T) {
	tests := map[string]struct {
		err      *customerrors.ParseError
		expected string
	}{
		"Document": {
			err:      &customerrors.ParseError{Err: customerrors.ErrInvalidDocument},
			expected: "parse error: invalid document",
		},
		"LineOnly": {
			err:      &customerrors.ParseError{Line: 3, Err: customerrors.ErrInvalidNumber},
			expected: "parse error at line 3: invalid number",
		},
		"WithRecord": {
			err:      &customerrors.ParseError{Line: 2, Record: []string{"Chairs", "x"}, Err: customerrors.ErrInvalidFieldCount},
			expected: "parse error at line 2: invalid field count (record: [Chairs x])",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.err.Err)
		})
	}
}
