package reservation

import (
	"strings"
	"time"

	"innkeeper/internal/pkg/errs"
)

// StayRange is the half-open interval [checkIn, checkOut) of calendar dates.
// Dates are stored as UTC midnights so that day arithmetic is exact; they are
// placed in the property's zone only when compared with wall-clock instants.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := civilDate(checkIn)
	out := civilDate(checkOut)
	if !in.Before(out) {
		return StayRange{}, errs.Wrapf(errs.ErrInvalidRange,
			"check-out %s must be at least one night after check-in %s",
			out.Format(time.DateOnly), in.Format(time.DateOnly))
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

// ParseStayRange accepts ISO-8601 calendar dates (YYYY-MM-DD).
func ParseStayRange(checkIn, checkOut string) (StayRange, error) {
	in, err := time.Parse(time.DateOnly, strings.TrimSpace(checkIn))
	if err != nil {
		return StayRange{}, errs.Wrapf(errs.ErrInvalidRange, "malformed check-in date %q", checkIn)
	}
	out, err := time.Parse(time.DateOnly, strings.TrimSpace(checkOut))
	if err != nil {
		return StayRange{}, errs.Wrapf(errs.ErrInvalidRange, "malformed check-out date %q", checkOut)
	}
	return NewStayRange(in, out)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s StayRange) CheckIn() time.Time  { return s.checkIn }
func (s StayRange) CheckOut() time.Time { return s.checkOut }

func (s StayRange) Nights() int {
	return int(s.checkOut.Sub(s.checkIn) / (24 * time.Hour))
}

// Overlaps uses the half-open test, so a stay ending on day D never collides
// with one starting on day D.
func (s StayRange) Overlaps(other StayRange) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}

// CheckInAt is midnight of the check-in date in loc.
func (s StayRange) CheckInAt(loc *time.Location) time.Time {
	return inZone(s.checkIn, loc)
}

// CheckOutAt is midnight of the check-out date in loc.
func (s StayRange) CheckOutAt(loc *time.Location) time.Time {
	return inZone(s.checkOut, loc)
}

func inZone(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func (s StayRange) IsZero() bool {
	return s.checkIn.IsZero() && s.checkOut.IsZero()
}

func (s StayRange) String() string {
	return "[" + s.checkIn.Format(time.DateOnly) + "," + s.checkOut.Format(time.DateOnly) + ")"
}

const MaxNoteLength = 500

var ErrNoteTooLong = errs.Wrap(errs.ErrValidation, "special notes are too long (max 500 characters)")

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len([]rune(value)) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
