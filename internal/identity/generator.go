package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/zarlcorp/zpin/internal/pin"
)

// Supported birth years. Indicator digits 1 to 6 cover three centuries.
const (
	MinYear = 1800
	MaxYear = 2099
)

const (
	maxSerial = 999

	// DefaultSpanYears is how far back random birth dates reach.
	DefaultSpanYears = 100
)

// Generator produces valid personal identification codes. Serial numbers
// are drawn at random, so two calls with the same details may collide.
type Generator struct {
	now   func() time.Time
	intn  func(n int) int
	years int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock random birth dates are measured from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRand sets the source of random ints in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(g *Generator) { g.intn = intn }
}

// WithSpan sets how many years back random birth dates reach.
func WithSpan(years int) Option {
	return func(g *Generator) {
		if years > 0 {
			g.years = years
		}
	}
}

// New creates a generator backed by crypto/rand and the wall clock.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:   time.Now,
		intn:  randIntn,
		years: DefaultSpanYears,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenderCenturyIndicator returns the first digit encoding the century of
// year and gender: 1800s are 1 and 2, 1900s 3 and 4, 2000s 5 and 6, odd
// for male.
func GenderCenturyIndicator(year int, gender pin.Gender) (int, error) {
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: year must be between %d and %d, got %d", pin.ErrArgument, MinYear, MaxYear, year)
	}
	if !gender.Valid() {
		return 0, fmt.Errorf("%w: gender must be either %s or %s, got %q", pin.ErrArgument, pin.Female, pin.Male, gender)
	}

	century := year / 100 * 100
	indicator := 1
	for c := MinYear; c < century; c += 100 {
		indicator += 2
	}
	if gender == pin.Female {
		indicator++
	}
	return indicator, nil
}

// Generate builds a code for d with a random serial number. Nothing is
// emitted unless d passes pin.Details.Check.
func (g *Generator) Generate(d pin.Details) (string, error) {
	if err := d.Check(); err != nil {
		return "", err
	}

	indicator, err := GenderCenturyIndicator(d.Year, d.Gender)
	if err != nil {
		return "", err
	}

	serial := 1 + g.intn(maxSerial)
	return pin.Complete(prefix(indicator, d.Year, d.Month, d.Day, serial))
}

// prefix formats the ten digits preceding the control digit.
func prefix(indicator, year, month, day, serial int) string {
	return fmt.Sprintf("%d%02d%02d%02d%03d", indicator, year%100, month, day, serial)
}

// Random generates a code for a random birth date. An empty gender is
// drawn uniformly.
func (g *Generator) Random(gender pin.Gender) (string, error) {
	if gender != "" && !gender.Valid() {
		return "", fmt.Errorf("%w: gender must be either %s or %s, got %q", pin.ErrArgument, pin.Female, pin.Male, gender)
	}
	return g.Generate(g.RandomDetails(gender))
}

// RandomMale generates a code for a random male birth date.
func (g *Generator) RandomMale() (string, error) {
	return g.Random(pin.Male)
}

// RandomFemale generates a code for a random female birth date.
func (g *Generator) RandomFemale() (string, error) {
	return g.Random(pin.Female)
}

// RandomDetails returns details with a random birth date. An empty gender
// is drawn uniformly.
func (g *Generator) RandomDetails(gender pin.Gender) pin.Details {
	if gender == "" {
		gender = pin.Male
		if g.intn(2) == 0 {
			gender = pin.Female
		}
	}

	dob := g.RandomDate()
	return pin.Details{
		Gender: gender,
		Year:   dob.Year(),
		Month:  int(dob.Month()),
		Day:    dob.Day(),
	}
}

// RandomDate returns a date between the configured span ago and today,
// clamped to the supported years.
func (g *Generator) RandomDate() time.Time {
	now := g.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if last := time.Date(MaxYear, time.December, 31, 0, 0, 0, 0, time.UTC); today.After(last) {
		today = last
	}
	from := today.AddDate(-g.years, 0, 0)
	if first := time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC); from.Before(first) {
		from = first
	}
	days := int((today.Unix() - from.Unix()) / secondsPerDay)
	return from.AddDate(0, 0, g.intn(days+1))
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
