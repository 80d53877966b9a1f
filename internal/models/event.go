package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006/01/02"

// Date is a calendar date. It marshals as "YYYY/MM/DD" and compares by
// calendar ordering, not string ordering.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY/MM/DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("models: invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date as a UTC midnight time.Time.
func (d Date) Time() time.Time { return d.t }

// Equal reports calendar equality.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Before reports calendar ordering.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalJSON renders the date as "YYYY/MM/DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY/MM/DD", an empty string, or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Event is a time-bounded event hosted by a museum. Museum is nil when the
// owning museum row no longer exists; that is a valid display state, not an
// error.
type Event struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	StartDate   Date    `json:"start_date"`
	EndDate     Date    `json:"end_date"`
	Description string  `json:"description,omitempty"`
	EventURL    string  `json:"event_url,omitempty"`
	Museum      *Museum `json:"museum,omitempty"`
}

// MuseumID returns the owning museum's id when the museum is known.
func (e Event) MuseumID() (int64, bool) {
	if e.Museum == nil {
		return 0, false
	}
	return e.Museum.ID, true
}

// SearchFields returns the event's candidate text fields: its title plus the
// owning museum's fields. An unknown museum contributes nothing.
func (e Event) SearchFields() []string {
	fields := []string{e.Title}
	if e.Museum != nil {
		fields = append(fields, e.Museum.SearchFields()...)
	}
	return fields
}

// DateLabel renders the event period. Single-day events show one date; a
// start date after the end date is rendered as given.
func (e Event) DateLabel() string {
	if e.StartDate.Equal(e.EndDate) {
		return e.StartDate.String()
	}
	return e.StartDate.String() + " ～ " + e.EndDate.String()
}
