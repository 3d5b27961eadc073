package scheduling

import "errors"

var (
	// ErrInvalidAmount rejects a payment amount that is missing,
	// non-numeric or not strictly positive.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrMissingPaymentType rejects a payment whose type is empty or not
	// one of the allowed values.
	ErrMissingPaymentType = errors.New("payment type is required")

	// ErrInvalidTransition rejects a status change the state machine does
	// not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTypeNotAllowed rejects an appointment type outside the vocabulary
	// of the selected treatment type.
	ErrTypeNotAllowed = errors.New("appointment type not allowed for treatment type")

	// ErrCrossesMidnight rejects a start time whose derived end time would
	// fall past 24:00. Appointments must start and end within one day.
	ErrCrossesMidnight = errors.New("appointment would cross midnight")

	// ErrInvalidClockTime rejects a time-of-day value not in HH:MM form.
	ErrInvalidClockTime = errors.New("invalid clock time")
)
