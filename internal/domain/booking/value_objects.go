package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidRange = errors.New("check-in must be strictly before check-out")
	ErrInvalidDate  = errors.New("date must be a well-formed calendar date")
)

const dateLayout = "2006-01-02"

// StayRange is a half-open calendar-date interval [checkIn, checkOut):
// the guest occupies the room on check-in night but not on check-out
// night, so back-to-back stays on the same room never conflict.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if !in.Before(out) {
		return StayRange{}, ErrInvalidRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

// ParseStayRange builds a StayRange from ISO "YYYY-MM-DD" strings.
func ParseStayRange(checkIn, checkOut string) (StayRange, error) {
	in, err := time.Parse(dateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return StayRange{}, ErrInvalidDate
	}
	out, err := time.Parse(dateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return StayRange{}, ErrInvalidDate
	}
	return NewStayRange(in, out)
}

func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

func (r StayRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps applies the half-open interval test: [a1,a2) and [b1,b2)
// overlap iff a1 < b2 && b1 < a2.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// ToDaterange renders the Postgres daterange literal for this stay.
func (r StayRange) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format(dateLayout), r.checkOut.Format(dateLayout))
}

func (r StayRange) String() string {
	return r.ToDaterange()
}

func (r StayRange) IsZero() bool {
	return r.checkIn.IsZero() && r.checkOut.IsZero()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Guest carries the identity attached to a booking. It is supplied by
// the identity layer and not validated here beyond basic shape.
type Guest struct {
	name  string
	email string
}

func NewGuest(name, email string) Guest {
	return Guest{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
	}
}

func (g Guest) Name() string {
	return g.name
}

func (g Guest) Email() string {
	return g.email
}

func (g Guest) IsAnonymous() bool {
	return g.name == "" && g.email == ""
}
