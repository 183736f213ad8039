package domain

import "errors"

var (
	// ErrInvalidDateRange covers unparseable dates and windows where
	// check_out is not strictly after check_in.
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrNotFound = errors.New("villa not found")

	// ErrCorruptCalendar flags a negative rate, which the schema forbids.
	ErrCorruptCalendar = errors.New("corrupt calendar data")
)
