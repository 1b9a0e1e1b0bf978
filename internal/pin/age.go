package pin

import "time"

// Age limits used when the caller does not choose one.
const (
	DefaultUnderAgeLimit = 18
	DefaultPensionAge    = 65
)

// Age returns the completed years between the birth date and now.
func Age(code string, now time.Time) (int, error) {
	born, err := BirthDate(code)
	if err != nil {
		return 0, err
	}
	return yearsBetween(born, now), nil
}

func yearsBetween(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}

// IsUnderAge reports whether the person is younger than limit years.
func IsUnderAge(code string, now time.Time, limit int) (bool, error) {
	age, err := Age(code, now)
	if err != nil {
		return false, err
	}
	return age < limit, nil
}

// IsPensioner reports whether the person has reached pensionAge.
func IsPensioner(code string, now time.Time, pensionAge int) (bool, error) {
	age, err := Age(code, now)
	if err != nil {
		return false, err
	}
	return age >= pensionAge, nil
}
