package pin

import "fmt"

// Multiplier sequences for the two checksum stages. The second is the first
// rotated left by two.
var (
	stageIWeights  = [10]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 1}
	stageIIWeights = [10]int{3, 4, 5, 6, 7, 8, 9, 1, 2, 3}
)

// prefixDigits returns the first ten digits of code.
func prefixDigits(code string) ([10]int, error) {
	var d [10]int
	if len(code) < 10 {
		return d, fmt.Errorf("%w: %q: need at least 10 digits", ErrFormat, code)
	}
	for i := range d {
		c := code[i]
		if c < '0' || c > '9' {
			return d, fmt.Errorf("%w: %q: non-digit at position %d", ErrFormat, code, i+1)
		}
		d[i] = int(c - '0')
	}
	return d, nil
}

func weightedSum(d [10]int, w [10]int) int {
	sum := 0
	for i := range d {
		sum += d[i] * w[i]
	}
	return sum
}

// ChecksumStageI returns the weighted sum of the first ten digits with
// multipliers 1,2,3,4,5,6,7,8,9,1, modulo 11. The result is 0 to 10.
func ChecksumStageI(code string) (int, error) {
	d, err := prefixDigits(code)
	if err != nil {
		return 0, err
	}
	return weightedSum(d, stageIWeights) % 11, nil
}

// ChecksumStageII returns the weighted sum of the first ten digits with
// multipliers 3,4,5,6,7,8,9,1,2,3, modulo 11, with 10 mapped to 0.
func ChecksumStageII(code string) (int, error) {
	d, err := prefixDigits(code)
	if err != nil {
		return 0, err
	}
	r := weightedSum(d, stageIIWeights) % 11
	if r == 10 {
		return 0, nil
	}
	return r, nil
}

// Checksum returns the control digit for the first ten digits of code.
// Stage II is only used when stage I yields 10.
func Checksum(code string) (int, error) {
	d, err := prefixDigits(code)
	if err != nil {
		return 0, err
	}
	if r := weightedSum(d, stageIWeights) % 11; r != 10 {
		return r, nil
	}
	r := weightedSum(d, stageIIWeights) % 11
	if r == 10 {
		return 0, nil
	}
	return r, nil
}

// Complete appends the control digit to a ten digit prefix.
func Complete(prefix string) (string, error) {
	if len(prefix) != 10 {
		return "", fmt.Errorf("%w: %q: prefix must be 10 digits", ErrFormat, prefix)
	}
	c, err := Checksum(prefix)
	if err != nil {
		return "", err
	}
	return prefix + string(rune('0'+c)), nil
}
