package stock

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid adjustment input")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InvalidInputError names the offending intent field so callers can return
// it to the form that produced it.
type InvalidInputError struct {
	Field  string
	Detail string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid adjustment input: %s: %s", e.Field, e.Detail)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError is returned when a remove exceeds on-hand stock and
// the caller has not opted into over-removal clamping.
type InsufficientStockError struct {
	Requested int
	OnHand    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: remove %d exceeds on-hand %d", e.Requested, e.OnHand)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
