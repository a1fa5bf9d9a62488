package normalize

import (
	"regexp"
	"strings"
)

var (
	backslashRuns  = regexp.MustCompile(`\\{2,}`)
	multipleSpaces = regexp.MustCompile(`[ \t]{2,}`)
	openDelimiter  = regexp.MustCompile(`\\\[[ \t]*`)
	closeDelimiter = regexp.MustCompile(`[ \t]*\\\]`)
)

// latexMarkers are the command/delimiter patterns used by LooksLikeLaTeX.
var latexMarkers = []string{
	`\frac`, `\sqrt`, `\times`, `\div`, `\left`, `\right`,
	`\cdot`, `\pi`, `\[`, `\]`, `\(`, `\)`, `\\`,
}

// LooksLikeLaTeX reports whether a string contains any of a fixed set of
// LaTeX commands or math delimiters.
func LooksLikeLaTeX(s string) bool {
	for _, marker := range latexMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// CleanLatex scrubs provider artifacts out of a LaTeX string: code fences and
// wrapping quotes, literal escaped newlines, doubled backslashes from
// JSON-in-JSON encoding, ragged display-math delimiter spacing, and outer
// \boxed{} wrappers (nested wrappers are peeled completely). The function is
// idempotent.
func CleanLatex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = stripFences(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)

	s = stripEscapedNewlines(s)
	s = backslashRuns.ReplaceAllString(s, `\`)

	s = openDelimiter.ReplaceAllString(s, `\[ `)
	s = closeDelimiter.ReplaceAllString(s, ` \]`)
	s = multipleSpaces.ReplaceAllString(s, " ")

	for {
		u := unwrapBoxed(s)
		if u == s {
			break
		}
		s = u
	}
	return strings.TrimSpace(s)
}

// stripFences removes surrounding triple-backtick code fences, including an
// optional language tag on the opening fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		tag := strings.TrimSpace(s[:nl])
		if tag == "" || isFenceTag(tag) {
			s = s[nl+1:]
		}
	} else {
		// Single-line fence: drop a leading tag word if present.
		for _, tag := range []string{"json", "latex"} {
			s = strings.TrimPrefix(s, tag)
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// unwrapBoxed strips one outer \boxed{...} wrapper when the closing brace of
// the wrapper is the final character of the string. CleanLatex applies it to
// a fixed point so nested wrappers unwrap completely.
func unwrapBoxed(s string) string {
	const prefix = `\boxed{`
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, "}") {
		return s
	}
	inner := s[len(prefix) : len(s)-1]
	depth := 0
	for _, r := range inner {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				// The closing brace at the end does not match the
				// opening \boxed{, so leave the string alone.
				return s
			}
		}
	}
	if depth != 0 {
		return s
	}
	return strings.TrimSpace(inner)
}
