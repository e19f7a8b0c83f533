package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	birthLayout = "02/01/2006"
)

// Date is a calendar day. It marshals to and from the yyyy-MM-dd wire
// format used by every date field in the API except agent birth dates.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want yyyy-MM-dd", s)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts a quoted yyyy-MM-dd string. null and the empty
// string both decode to the zero Date so callers can detect absence.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
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

// BirthDate is a calendar day carried on the wire as dd/MM/yyyy. Agent
// birth dates use this format; all other dates use Date.
type BirthDate struct {
	time.Time
}

// ParseBirthDate parses a dd/MM/yyyy string.
func ParseBirthDate(s string) (BirthDate, error) {
	t, err := time.Parse(birthLayout, s)
	if err != nil {
		return BirthDate{}, fmt.Errorf("invalid date %q: want dd/MM/yyyy", s)
	}
	return BirthDate{t}, nil
}

func (d BirthDate) String() string { return d.Format(birthLayout) }

func (d BirthDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(birthLayout) + `"`), nil
}

func (d *BirthDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = BirthDate{}
		return nil
	}
	parsed, err := ParseBirthDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
