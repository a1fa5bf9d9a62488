package normalize

import (
	"regexp"
	"strings"
)

// stepNumbering matches leading "1. " / "2) " style markers used to split a
// single blob of numbered steps.
var stepNumbering = regexp.MustCompile(`(?:^|\s)\d+\s*[.)]\s+`)

// normalizeSteps coerces an aliased steps value into an ordered string slice.
// Sequences keep their order with non-string elements JSON-encoded. A single
// string falls through a chain of splitters: line breaks, then numbered
// markers, then sentence boundaries, then the whole string as one step.
func normalizeSteps(v any) []string {
	switch t := v.(type) {
	case []any:
		steps := make([]string, 0, len(t))
		for _, el := range t {
			if s, ok := el.(string); ok {
				steps = append(steps, s)
			} else {
				steps = append(steps, stringifyJSON(el))
			}
		}
		if len(steps) == 0 {
			return nil
		}
		return steps
	case string:
		return splitStepsString(t)
	case map[string]any:
		return []string{stringifyJSON(t)}
	default:
		return nil
	}
}

func splitStepsString(s string) []string {
	s = stripFences(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if lines := nonEmptyLines(s); len(lines) > 1 {
		return lines
	}
	if numbered := splitNumbered(s); len(numbered) > 1 {
		return numbered
	}
	if sentences := splitSentences(s); len(sentences) > 1 {
		return sentences
	}
	return []string{s}
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitNumbered splits on "N. " / "N) " markers, dropping the markers.
func splitNumbered(s string) []string {
	locs := stepNumbering.FindAllStringIndex(s, -1)
	if len(locs) < 2 {
		return nil
	}
	var segments []string
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := strings.TrimSpace(s[loc[1]:end])
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// splitSentences splits on ". " boundaries, restoring the period on every
// segment but the last (which keeps whatever ending it had).
func splitSentences(s string) []string {
	parts := strings.Split(s, ". ")
	if len(parts) < 2 {
		return nil
	}
	var sentences []string
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if i < len(parts)-1 {
			p += "."
		}
		sentences = append(sentences, p)
	}
	return sentences
}
