package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unicodeMinusReplacer maps the various Unicode minus/dash codepoints
// providers emit back to the ASCII hyphen.
var unicodeMinusReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
)

var repeatedHyphens = regexp.MustCompile(`-{2,}`)

// coerceAnswer reduces an aliased answer value to a string or a float64.
// Objects prefer their value/text fields; numeric-looking strings become
// numbers; everything else is stringified.
func coerceAnswer(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if inner, ok := t["value"]; ok && inner != nil {
			return coerceAnswer(inner)
		}
		if inner, ok := t["text"]; ok && inner != nil {
			return coerceAnswer(inner)
		}
		return stringifyJSON(t)
	case string:
		return coerceAnswerString(t)
	case float64, bool:
		return t
	case []any:
		return stringifyJSON(t)
	default:
		return v
	}
}

// coerceAnswerString cleans a textual answer and converts it to a number
// when the whole trimmed string parses as one.
func coerceAnswerString(s string) any {
	s = unicodeMinusReplacer.Replace(s)
	s = repeatedHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return n
	}
	return s
}
