package identity

import (
	"fmt"
	"iter"
	"time"

	"github.com/zarlcorp/zpin/internal/pin"
)

// codesPerDay is the number of codes issuable for one birth date: every
// serial number for both genders.
const codesPerDay = maxSerial * 2

const secondsPerDay = 24 * 60 * 60

// RangeIterator enumerates every code issuable for the birth dates in an
// inclusive range. Codes come in date order, then serial order, female
// before male for each serial. The zero value yields nothing.
type RangeIterator struct {
	start, end time.Time

	day    time.Time
	serial int
	male   bool
	done   bool
}

// Range returns an iterator over the codes for birth dates from start to
// end inclusive. Only the calendar dates of start and end are used. A start
// after end yields an empty sequence.
func Range(start, end time.Time) (*RangeIterator, error) {
	start, end = dateOf(start), dateOf(end)

	it := &RangeIterator{start: start, end: end}
	if start.After(end) {
		it.done = true
		return it, nil
	}

	for _, t := range []time.Time{start, end} {
		if t.Year() < MinYear || t.Year() > MaxYear {
			return nil, fmt.Errorf("%w: range year must be between %d and %d, got %d", pin.ErrArgument, MinYear, MaxYear, t.Year())
		}
	}

	it.Reset()
	return it, nil
}

// RangeCount returns how many codes Range yields for start and end.
func RangeCount(start, end time.Time) int {
	start, end = dateOf(start), dateOf(end)
	if start.After(end) {
		return 0
	}
	days := int((end.Unix()-start.Unix())/secondsPerDay) + 1
	return days * codesPerDay
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Reset rewinds the iterator to the first code.
func (it *RangeIterator) Reset() {
	if it.start.IsZero() || it.start.After(it.end) {
		it.done = true
		return
	}
	it.day = it.start
	it.serial = 1
	it.male = false
	it.done = false
}

// Next returns the next code, or false once the range is exhausted.
func (it *RangeIterator) Next() (string, bool) {
	// serial is 0 only on a zero value that never went through Range
	if it.done || it.serial == 0 {
		return "", false
	}

	gender := pin.Female
	if it.male {
		gender = pin.Male
	}

	// years were checked by Range
	indicator, _ := GenderCenturyIndicator(it.day.Year(), gender)
	code := mustComplete(prefix(indicator, it.day.Year(), int(it.day.Month()), it.day.Day(), it.serial))

	it.advance()
	return code, true
}

func (it *RangeIterator) advance() {
	if !it.male {
		it.male = true
		return
	}

	it.male = false
	it.serial++
	if it.serial <= maxSerial {
		return
	}

	it.serial = 1
	it.day = it.day.AddDate(0, 0, 1)
	if it.day.After(it.end) {
		it.done = true
	}
}

// All returns the whole range as a sequence. Each call starts from the
// first code and leaves it untouched.
func (it *RangeIterator) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		c := *it
		c.Reset()
		for code, ok := c.Next(); ok; code, ok = c.Next() {
			if !yield(code) {
				return
			}
		}
	}
}

// Pins is shorthand for Range(start, end) followed by All.
func Pins(start, end time.Time) (iter.Seq[string], error) {
	it, err := Range(start, end)
	if err != nil {
		return nil, err
	}
	return it.All(), nil
}

// mustComplete appends the control digit to a prefix built from checked
// fields.
func mustComplete(prefix string) string {
	code, err := pin.Complete(prefix)
	if err != nil {
		panic("identity: " + err.Error())
	}
	return code
}
