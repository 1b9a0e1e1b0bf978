// Package scan finds personal identification codes in free text such as log
// lines, exports and message bodies.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/zarlcorp/zpin/internal/pin"
)

// Match is an eleven digit candidate found in text.
type Match struct {
	PIN        string `json:"pin" yaml:"pin"`
	Offset     int    `json:"offset" yaml:"offset"`
	Valid      bool   `json:"valid" yaml:"valid"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Confidence int    `json:"confidence" yaml:"confidence"`
}

// context keywords that indicate a nearby number is a personal code
var keywords = []string{
	"isikukood",
	"isikukoodi",
	"personal code",
	"personal id",
	"id code",
	"identification",
	"ssn",
	"pin",
}

var candidateRe = regexp.MustCompile(`\b\d{11}\b`)

// spans whose digits are never codes
var (
	urlRe   = regexp.MustCompile(`https?://\S+`)
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe = regexp.MustCompile(`\+\d`)
)

// Find returns every eleven digit run in text, most likely codes first.
// Runs that fail validation are kept with Valid false and the failure kind.
func Find(text string) []Match {
	if text == "" {
		return nil
	}

	cleaned := blank(text)
	lower := strings.ToLower(cleaned)

	var matches []Match
	for _, loc := range candidateRe.FindAllStringIndex(cleaned, -1) {
		start, end := loc[0], loc[1]
		if isPhone(cleaned, start) {
			continue
		}

		code := cleaned[start:end]
		m := Match{PIN: code, Offset: start}
		if err := pin.ValidateStrict(code); err != nil {
			m.Kind = pin.Kind(err)
		} else {
			m.Valid = true
		}
		m.Confidence = score(lower, m, start, end)
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// Valid returns only the codes in text that pass validation, in the order
// they appear.
func Valid(text string) []Match {
	var valid []Match
	for _, m := range Find(text) {
		if m.Valid {
			valid = append(valid, m)
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Offset < valid[j].Offset
	})
	return valid
}

// Redact replaces every valid code in text with mask characters, keeping
// the first digit so the century and gender stay readable.
func Redact(text string, mask rune) string {
	valid := Valid(text)
	if len(valid) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range valid {
		b.WriteString(text[last:m.Offset])
		b.WriteByte(m.PIN[0])
		b.WriteString(strings.Repeat(string(mask), pin.Length-1))
		last = m.Offset + pin.Length
	}
	b.WriteString(text[last:])
	return b.String()
}

// blank overwrites URLs and email addresses with spaces so embedded digits
// are skipped while offsets stay aligned with the input.
func blank(text string) string {
	spaces := func(s string) string { return strings.Repeat(" ", len(s)) }
	cleaned := urlRe.ReplaceAllStringFunc(text, spaces)
	return emailRe.ReplaceAllStringFunc(cleaned, spaces)
}

// isPhone reports whether the run at start is an international number.
func isPhone(text string, start int) bool {
	return start > 0 && phoneRe.MatchString(text[start-1:start+1])
}

// score assigns a confidence value to a candidate based on its validity
// and context.
func score(lower string, m Match, start, end int) int {
	s := 0

	switch {
	case m.Valid:
		s += 50
	case m.Kind == "checksum":
		// plausible layout, likely a typo
		s += 20
	}

	if hasKeywordNearby(lower, start, end, 40) {
		s += 30
	}

	// structural clues: code follows ":" or "="
	prefix := strings.TrimRight(surroundingContext(lower, start, start, 4), " ")
	if strings.HasSuffix(prefix, ":") || strings.HasSuffix(prefix, "=") {
		s += 10
	}

	if isIsolated(lower, start, end) {
		s += 10
	}

	return s
}

func hasKeywordNearby(lower string, start, end, radius int) bool {
	ctx := surroundingContext(lower, start, end, radius)
	for _, kw := range keywords {
		if strings.Contains(ctx, kw) {
			return true
		}
	}
	return false
}

// surroundingContext returns the text within radius bytes around [start, end).
func surroundingContext(text string, start, end, radius int) string {
	lo := max(start-radius, 0)
	hi := min(end+radius, len(text))
	return text[lo:hi]
}

// isIsolated checks if the code is surrounded by whitespace or line boundaries.
func isIsolated(text string, start, end int) bool {
	before := start == 0 || strings.ContainsRune(" \t\n", rune(text[start-1]))
	after := end >= len(text) || strings.ContainsRune(" \t\r\n", rune(text[end]))
	return before && after
}
