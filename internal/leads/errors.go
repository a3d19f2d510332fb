package leads

import "errors"

var (
	// ErrInvalidBody is returned when a submission cannot be decoded
	ErrInvalidBody = errors.New("leads: invalid request body")

	// ErrNilStore is returned when a service is built without a store
	ErrNilStore = errors.New("leads: store is required")
)
