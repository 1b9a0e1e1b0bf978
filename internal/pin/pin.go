// Package pin parses and validates Estonian personal identification codes.
//
// A code is eleven digits: the gender and century indicator, a two digit
// year, month, day, a three digit serial number and a control digit.
//
//	3 86 10 15 018 0
//	| |  |  |  |   control digit
//	| |  |  |  serial number
//	| |  |  day
//	| |  month
//	| year within century
//	gender and century indicator
//
// Field accessors only check the format. Validate and ValidateStrict also
// check the calendar date and the control digit.
package pin

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Length is the number of digits in a code.
const Length = 11

// grammar is the positional format. The day field is a coarse range check;
// calendar validity is decided separately.
var grammar = regexp.MustCompile(`^[1-6]\d{2}(0[1-9]|1[012])(0[1-9]|[12]\d|3[01])\d{4}$`)

// MatchesGrammar reports whether code has the positional format of a
// personal identification code. It does not check calendar dates (leap
// years, day 31 in a 30 day month) or the control digit.
func MatchesGrammar(code string) bool {
	return grammar.MatchString(code)
}

func formatError(code string) error {
	return fmt.Errorf("%w: %q: check length, gender and century indicator and date format", ErrFormat, code)
}

// field returns the decimal value of code[from:to]. The caller has matched
// the grammar.
func field(code string, from, to int) int {
	n, _ := strconv.Atoi(code[from:to])
	return n
}

// GenderOf returns the gender encoded by the first digit: odd is male,
// even is female.
func GenderOf(code string) (Gender, error) {
	if !MatchesGrammar(code) {
		return "", formatError(code)
	}
	if field(code, 0, 1)%2 == 0 {
		return Female, nil
	}
	return Male, nil
}

// BirthCentury returns 1800, 1900 or 2000.
func BirthCentury(code string) (int, error) {
	if !MatchesGrammar(code) {
		return 0, formatError(code)
	}
	return centuryOf(field(code, 0, 1)), nil
}

// centuryOf maps indicator 1,2 to 1800, 3,4 to 1900 and 5,6 to 2000.
func centuryOf(indicator int) int {
	return 1800 + (indicator-1)/2*100
}

// YearOfBirth returns the full birth year.
func YearOfBirth(code string) (int, error) {
	century, err := BirthCentury(code)
	if err != nil {
		return 0, err
	}
	return century + field(code, 1, 3), nil
}

// MonthOfBirth returns the birth month, 1 to 12.
func MonthOfBirth(code string) (int, error) {
	if !MatchesGrammar(code) {
		return 0, formatError(code)
	}
	return field(code, 3, 5), nil
}

// DayOfBirth returns the birth day of month, 1 to 31.
func DayOfBirth(code string) (int, error) {
	if !MatchesGrammar(code) {
		return 0, formatError(code)
	}
	return field(code, 5, 7), nil
}

// SerialNumber returns digits 8 to 10 with their leading zeros.
//
// Before 2013 the serial identified the hospital and the birth order there
// on that day; since 2013 it is the birth order in the national register.
func SerialNumber(code string) (string, error) {
	if !MatchesGrammar(code) {
		return "", formatError(code)
	}
	return code[7:10], nil
}

// Decode extracts every field of code. Only the format is checked.
func Decode(code string) (Details, error) {
	if !MatchesGrammar(code) {
		return Details{}, formatError(code)
	}
	g := Male
	if field(code, 0, 1)%2 == 0 {
		g = Female
	}
	return Details{
		Gender: g,
		Year:   centuryOf(field(code, 0, 1)) + field(code, 1, 3),
		Month:  field(code, 3, 5),
		Day:    field(code, 5, 7),
		Serial: code[7:10],
	}, nil
}

// Validate reports whether code has a valid format, a real calendar birth
// date and a matching control digit.
func Validate(code string) bool {
	return ValidateStrict(code) == nil
}

// ValidateStrict checks format, birth date and control digit in that order
// and returns the first failure, wrapping ErrFormat, ErrInvalidDate or
// ErrChecksum.
func ValidateStrict(code string) error {
	d, err := Decode(code)
	if err != nil {
		return err
	}

	if !ValidDate(d.Year, d.Month, d.Day) {
		return fmt.Errorf("%w: %s encodes %04d-%02d-%02d", ErrInvalidDate, code, d.Year, d.Month, d.Day)
	}

	// the grammar guarantees eleven digits
	want, _ := Checksum(code)
	if got := field(code, 10, 11); got != want {
		return &ChecksumError{PIN: code, Got: got, Want: want}
	}

	return nil
}

// BirthDate returns the birth date at midnight UTC. The code must pass
// ValidateStrict.
func BirthDate(code string) (time.Time, error) {
	if err := ValidateStrict(code); err != nil {
		return time.Time{}, err
	}
	d, _ := Decode(code)
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC), nil
}

// ValidDate reports whether year, month and day form a real calendar date.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
