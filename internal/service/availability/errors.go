package availability

import "errors"

var (
	// ErrDataUnavailable any read needed for the index failed, no partial index is built
	ErrDataUnavailable = errors.New("availability: data unavailable")
	// ErrSalonNotFound the salon of the query does not exist
	ErrSalonNotFound = errors.New("availability: salon not found")
	// ErrSlotUnavailable a chosen slot no longer satisfies the booking constraints
	ErrSlotUnavailable = errors.New("availability: slot unavailable")
)
