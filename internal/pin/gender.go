package pin

import (
	"fmt"
	"strings"
)

// Gender is the gender encoded in the first digit of a code.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Valid reports whether g is one of the two recognized genders.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

func (g Gender) String() string {
	return string(g)
}

// ParseGender accepts "male" or "female" in any case.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: gender must be either %s or %s, got %q", ErrArgument, Female, Male, s)
	}
	return g, nil
}
