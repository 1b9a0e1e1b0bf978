package identity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zarlcorp/zpin/internal/pin"
)

// DetailsFromMap reads person details from a mapping with the keys gender,
// year, month and day. Unknown keys are ignored. Numbers may be any Go
// integer type, an integral float64 (as decoded from JSON) or a numeric
// string.
func DetailsFromMap(m map[string]any) (pin.Details, error) {
	if len(m) == 0 {
		return pin.Details{}, fmt.Errorf("%w: person details are empty", pin.ErrArgument)
	}

	var d pin.Details

	switch v := m["gender"].(type) {
	case nil:
		return pin.Details{}, missingKey("gender")
	case string:
		d.Gender = pin.Gender(strings.ToLower(strings.TrimSpace(v)))
	case pin.Gender:
		d.Gender = v
	default:
		return pin.Details{}, fmt.Errorf("%w: gender must be a string, got %T", pin.ErrArgument, v)
	}
	if d.Gender == "" {
		return pin.Details{}, missingKey("gender")
	}

	fields := []struct {
		key string
		dst *int
	}{
		{"year", &d.Year},
		{"month", &d.Month},
		{"day", &d.Day},
	}
	for _, f := range fields {
		n, err := intValue(f.key, m[f.key])
		if err != nil {
			return pin.Details{}, err
		}
		if n == 0 {
			return pin.Details{}, missingKey(f.key)
		}
		*f.dst = n
	}

	return d, nil
}

func missingKey(key string) error {
	return fmt.Errorf("%w: mandatory key %q is missing or empty", pin.ErrArgument, key)
}

func intValue(key string, v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", pin.ErrArgument, key, n)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %s out of range, got %v", pin.ErrArgument, key, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", pin.ErrArgument, key, err)
		}
		return int(i), nil
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer, got %q", pin.ErrArgument, key, n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %T", pin.ErrArgument, key, v)
}
