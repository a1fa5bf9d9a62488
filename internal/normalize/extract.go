package normalize

import (
	"encoding/json"
	"strings"
)

// ExtractJSON mines a string for a JSON value. Candidates are tried in order:
// the inner content of a fenced code block, the whole (trimmed) text, the
// substring between the first '{' and the last '}', and that substring with
// literal escaped newlines stripped. The first candidate that parses wins.
func ExtractJSON(text string) (any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	candidates := make([]string, 0, 4)
	if fenced := fencedBlockContent(text); fenced != "" {
		candidates = append(candidates, fenced)
	}
	candidates = append(candidates, text)
	if sub := braceSubstring(text); sub != "" {
		candidates = append(candidates, sub, stripEscapedNewlines(sub))
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		var v any
		if err := json.Unmarshal([]byte(c), &v); err == nil {
			return v, true
		}
	}
	return nil, false
}

// fencedBlockContent returns the inner content of the first triple-backtick
// code block, optionally tagged "json". Empty when no complete fence exists.
func fencedBlockContent(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return ""
	}
	rest := text[start+3:]
	// Skip a language tag on the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || isFenceTag(tag) {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

func isFenceTag(tag string) bool {
	switch strings.ToLower(tag) {
	case "json", "latex", "text", "markdown":
		return true
	}
	return false
}

// braceSubstring returns the substring between the first '{' and the last
// '}', or empty when no such span exists.
func braceSubstring(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// stripEscapedNewlines removes literal two-character \n and \r escape
// sequences, which show up when providers double-encode JSON strings.
func stripEscapedNewlines(s string) string {
	s = strings.ReplaceAll(s, `\n`, " ")
	s = strings.ReplaceAll(s, `\r`, " ")
	return s
}
