package pin

import "fmt"

// Details are the person attributes a code encodes. Serial is only set
// when the details were decoded from a code.
type Details struct {
	Gender Gender `json:"gender" yaml:"gender"`
	Year   int    `json:"year" yaml:"year"`
	Month  int    `json:"month" yaml:"month"`
	Day    int    `json:"day" yaml:"day"`
	Serial string `json:"serial,omitempty" yaml:"serial,omitempty"`
}

// Check verifies that every mandatory field is set, the gender is
// recognized and the date exists. Missing fields and unknown genders wrap
// ErrArgument; impossible dates wrap ErrInvalidDate.
func (d Details) Check() error {
	switch {
	case d.Gender == "":
		return missing("gender")
	case d.Year == 0:
		return missing("year")
	case d.Month == 0:
		return missing("month")
	case d.Day == 0:
		return missing("day")
	}

	if !d.Gender.Valid() {
		return fmt.Errorf("%w: gender must be either %s or %s, got %q", ErrArgument, Female, Male, d.Gender)
	}

	if !ValidDate(d.Year, d.Month, d.Day) {
		return fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidDate, d.Year, d.Month, d.Day)
	}

	return nil
}

func missing(key string) error {
	return fmt.Errorf("%w: mandatory key %q is missing or empty", ErrArgument, key)
}
