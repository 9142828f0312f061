package utils

import "time"

const (
	bookingDateLayout = "2006-01-02"
	displayDateLayout = "Monday, 02 January 2006"
)

// FormatAppointmentDate renders a YYYY-MM-DD date as "Saturday, 25 January 2025".
// Input that is not a valid calendar date is returned unchanged.
func FormatAppointmentDate(raw string) string {
	d, err := time.Parse(bookingDateLayout, raw)
	if err != nil {
		return raw
	}
	return d.Format(displayDateLayout)
}

// FormatTimestamp renders an instant for API consumers; the zero time renders empty.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
