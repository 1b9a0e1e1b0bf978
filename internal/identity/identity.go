// Package identity generates Estonian personal identification codes.
package identity

import (
	"time"

	"github.com/zarlcorp/zpin/internal/pin"
)

// Identity is a validated code with its decoded fields.
type Identity struct {
	PIN       string     `json:"pin" yaml:"pin"`
	Gender    pin.Gender `json:"gender" yaml:"gender"`
	BirthDate time.Time  `json:"birth_date" yaml:"birth_date"`
	Century   int        `json:"century" yaml:"century"`
	Serial    string     `json:"serial" yaml:"serial"`
}

// Describe validates code and returns its decoded fields.
func Describe(code string) (Identity, error) {
	dob, err := pin.BirthDate(code)
	if err != nil {
		return Identity{}, err
	}

	d, err := pin.Decode(code)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		PIN:       code,
		Gender:    d.Gender,
		BirthDate: dob,
		Century:   d.Year / 100 * 100,
		Serial:    d.Serial,
	}, nil
}

// Age returns the completed years at now. id must come from Describe, which
// has validated the code; a hand-built invalid Identity reports 0.
func (id Identity) Age(now time.Time) int {
	age, err := pin.Age(id.PIN, now)
	if err != nil {
		return 0
	}
	return age
}
