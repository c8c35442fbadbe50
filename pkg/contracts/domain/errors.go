package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories produced by the
// ingestion pipeline. Callers match on kind via IsKind or errors.Is
// rather than comparing error identities.
type ErrorKind int

const (
	// KindUnknown is the zero value and never produced by the pipeline
	KindUnknown ErrorKind = iota

	// Field-level validation failures
	KindInvalidTicker
	KindInvalidDesc
	KindInvalidCoupon
	KindInvalidCleanPrice
	KindInvalidDirtyPrice
	KindInvalidYield
	KindInvalidMaturityDate
	KindInvalidSettlementDate
	KindInvalidFacePrice

	// Structural failures
	KindNilBond
	KindMaturityBeforeSettlement
	KindMissingPriceAndYield
	KindStateConflict

	// Numeric solver failures
	KindDerivativeVanished
	KindNoConvergence

	// Row and batch categories
	KindUnsupportedBond
	KindNotDataRow
	KindDataUnavailable
)

var kindMessages = map[ErrorKind]string{
	KindUnknown:                  "unknown error",
	KindInvalidTicker:            "invalid ticker",
	KindInvalidDesc:              "invalid description",
	KindInvalidCoupon:            "invalid coupon",
	KindInvalidCleanPrice:        "invalid clean price",
	KindInvalidDirtyPrice:        "invalid dirty price",
	KindInvalidYield:             "invalid yield to maturity",
	KindInvalidMaturityDate:      "invalid maturity date",
	KindInvalidSettlementDate:    "invalid settlement date",
	KindInvalidFacePrice:         "invalid face price",
	KindNilBond:                  "bond is empty",
	KindMaturityBeforeSettlement: "maturity date is before settlement date",
	KindMissingPriceAndYield:     "missing price and yield",
	KindStateConflict:            "bond is not in a valid state for this operation",
	KindDerivativeVanished:       "yield solver failed: derivative is too small",
	KindNoConvergence:            "yield solver failed to converge within max iterations",
	KindUnsupportedBond:          "unsupported bond",
	KindNotDataRow:               "not a data row",
	KindDataUnavailable:          "data unavailable",
}

var kindCodes = map[ErrorKind]string{
	KindUnknown:                  "UNKNOWN",
	KindInvalidTicker:            "INVALID_TICKER",
	KindInvalidDesc:              "INVALID_DESC",
	KindInvalidCoupon:            "INVALID_COUPON",
	KindInvalidCleanPrice:        "INVALID_CLEAN_PRICE",
	KindInvalidDirtyPrice:        "INVALID_DIRTY_PRICE",
	KindInvalidYield:             "INVALID_YIELD",
	KindInvalidMaturityDate:      "INVALID_MATURITY_DATE",
	KindInvalidSettlementDate:    "INVALID_SETTLEMENT_DATE",
	KindInvalidFacePrice:         "INVALID_FACE_PRICE",
	KindNilBond:                  "NIL_BOND",
	KindMaturityBeforeSettlement: "MATURITY_BEFORE_SETTLEMENT",
	KindMissingPriceAndYield:     "MISSING_PRICE_AND_YIELD",
	KindStateConflict:            "STATE_CONFLICT",
	KindDerivativeVanished:       "DERIVATIVE_VANISHED",
	KindNoConvergence:            "NO_CONVERGENCE",
	KindUnsupportedBond:          "UNSUPPORTED_BOND",
	KindNotDataRow:               "NOT_DATA_ROW",
	KindDataUnavailable:          "DATA_UNAVAILABLE",
}

// String returns the machine-readable code for the kind
func (k ErrorKind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindUnknown]
}

// Error is a pipeline error tagged with its kind plus optional context
// about where it occurred. Row is -1 when the error is not tied to a
// specific source row.
type Error struct {
	Kind  ErrorKind
	Field string
	Row   int
}

// NewError creates an error of the given kind with no row or field context
func NewError(kind ErrorKind) *Error {
	return &Error{Kind: kind, Row: -1}
}

// FieldError creates a field-level validation error
func FieldError(kind ErrorKind, field string) *Error {
	return &Error{Kind: kind, Field: field, Row: -1}
}

// WithRow returns a copy of the error annotated with a source row index
func (e *Error) WithRow(row int) *Error {
	c := *e
	c.Row = row
	return &c
}

// Error implements the error interface
func (e *Error) Error() string {
	msg, ok := kindMessages[e.Kind]
	if !ok {
		msg = kindMessages[KindUnknown]
	}
	switch {
	case e.Field != "" && e.Row >= 0:
		return fmt.Sprintf("%s (field %q, row %d)", msg, e.Field, e.Row)
	case e.Field != "":
		return fmt.Sprintf("%s (field %q)", msg, e.Field)
	case e.Row >= 0:
		return fmt.Sprintf("%s (row %d)", msg, e.Row)
	default:
		return msg
	}
}

// Is matches any *Error with the same kind, so errors.Is works against
// NewError(kind) targets regardless of attached context
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the error kind from err, unwrapping as needed.
// Returns KindUnknown for nil and for errors produced outside the
// pipeline.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
