package booking

import "fmt"

// PersistenceError means a booking could not be stored. It is the only failure
// surfaced to the website.
type PersistenceError struct {
	Op        string
	BookingID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s booking %s: %v", e.Op, e.BookingID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
