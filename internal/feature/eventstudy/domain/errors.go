// Package domain defines domain-level errors for the eventstudy feature.
package domain

import (
	"errors"
	"fmt"
)

// Configuration errors. These are raised before any data access and are
// never retried.
var (
	// ErrSymbolRequired indicates that the request did not name a symbol.
	ErrSymbolRequired = errors.New("symbol is required")

	// ErrDateRangeRequired indicates a missing or inverted analysis date range.
	ErrDateRangeRequired = errors.New("start and end dates are required")

	// ErrEventFilterRequired indicates that neither event names nor event
	// categories were supplied.
	ErrEventFilterRequired = errors.New("at least one event name or category is required")

	// ErrNegativeWindowDays indicates a negative daysBefore or daysAfter.
	ErrNegativeWindowDays = errors.New("window day counts must not be negative")
)

// ErrDataUnavailable indicates that the price-series provider returned no
// trading sessions for the buffered date range.
var ErrDataUnavailable = errors.New("no trading data available for symbol")

// InsufficientEventsError is returned when fewer valid event windows survive
// validation than the requested minimum. The message is a user-actionable
// diagnostic, not a generic failure.
type InsufficientEventsError struct {
	Found    int
	Valid    int
	Required int
	Excluded int
}

func (e *InsufficientEventsError) Error() string {
	return fmt.Sprintf("insufficient valid events: found %d, valid %d, required %d (%d excluded)",
		e.Found, e.Valid, e.Required, e.Excluded)
}
