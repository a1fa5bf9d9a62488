// Package normalize turns heterogeneous LLM provider output into a canonical
// SolutionResult. Providers return inconsistently-shaped JSON (or plain text,
// or JSON-encoded-JSON, or a chat-completion envelope), so recovery is a
// cascade of ordered strategies: each is pure and independently testable, and
// the first one that yields a usable object wins.
package normalize

import (
	"encoding/json"
)

// SolutionResult is the canonical output of the pipeline. Absent fields are
// omitted from JSON entirely; Answer is either a string or a float64.
type SolutionResult struct {
	Latex  string   `json:"latex,omitempty"`
	Answer any      `json:"answer,omitempty"`
	Steps  []string `json:"steps,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// Input is the raw material handed to the cascade: the backend's best-effort
// parse of the provider body, plus the raw text fallback when parsing failed.
type Input struct {
	Parsed any
	Raw    string
}

// strategy is one named stage of the object-recovery cascade.
type strategy struct {
	name string
	fn   func(in Input) (map[string]any, bool)
}

// objectStrategies are tried in order; the first success is used.
var objectStrategies = []strategy{
	{"parsed-object", fromParsedObject},
	{"parsed-string", fromParsedString},
	{"raw-text", fromRawText},
}

// Normalize converts a provider response into a SolutionResult. It is a pure
// function of its inputs, never panics, and degrades to a notes-only result
// when nothing structured is recoverable.
func Normalize(parsed any, rawText string) SolutionResult {
	in := Input{Parsed: parsed, Raw: rawText}

	obj, fallback, ok := resolveObject(in)
	if !ok {
		return fallbackResult(in, fallback)
	}

	var res SolutionResult
	if v, found := pickAlias(obj, LatexAliases); found {
		if s, isStr := v.(string); isStr {
			res.Latex = CleanLatex(s)
		}
	}
	if v, found := pickAlias(obj, AnswerAliases); found {
		res.Answer = coerceAnswer(v)
		if s, isStr := res.Answer.(string); isStr && LooksLikeLaTeX(s) {
			res.Answer = CleanLatex(s)
		}
	}
	if v, found := pickAlias(obj, StepsAliases); found {
		res.Steps = normalizeSteps(v)
	}
	if v, found := pickAlias(obj, NotesAliases); found {
		if s, isStr := v.(string); isStr {
			res.Notes = s
		}
	}

	if res.Latex == "" && res.Answer == nil && res.Steps == nil && res.Notes == "" {
		// An object was recovered but none of the known fields were present.
		// Surface the raw material rather than returning an empty result.
		return fallbackResult(in, fallback)
	}
	return res
}

// resolveObject runs the strategy cascade and then unwraps any provider
// envelope around the recovered object. The returned fallback string is the
// best raw text discovered along the way (e.g. unparseable envelope content).
func resolveObject(in Input) (map[string]any, string, bool) {
	var bestFallback string
	for _, s := range objectStrategies {
		obj, ok := s.fn(in)
		if !ok {
			continue
		}
		unwrapped, fallback, ok := unwrapEnvelope(obj, 0)
		if !ok {
			if bestFallback == "" {
				bestFallback = fallback
			}
			continue
		}
		return unwrapped, fallback, true
	}
	return nil, bestFallback, false
}

// fromParsedObject accepts an already-decoded JSON object.
func fromParsedObject(in Input) (map[string]any, bool) {
	obj, ok := in.Parsed.(map[string]any)
	return obj, ok
}

// fromParsedString handles double-encoded responses where the parsed value is
// itself a JSON string containing (or wrapping) the real object.
func fromParsedString(in Input) (map[string]any, bool) {
	s, ok := in.Parsed.(string)
	if !ok {
		return nil, false
	}
	return objectFromText(s)
}

// fromRawText is the last resort: mine the raw response body for JSON.
func fromRawText(in Input) (map[string]any, bool) {
	if in.Raw == "" {
		return nil, false
	}
	return objectFromText(in.Raw)
}

// objectFromText extracts a JSON object from free text, ignoring any
// non-object JSON values it finds.
func objectFromText(text string) (map[string]any, bool) {
	v, ok := ExtractJSON(text)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// fallbackResult builds the degraded notes-only result. The original raw text
// wins over any intermediate text recovered during envelope unwrapping.
func fallbackResult(in Input, fallback string) SolutionResult {
	notes := in.Raw
	if notes == "" {
		notes = fallback
	}
	if notes == "" {
		if s, ok := in.Parsed.(string); ok {
			notes = s
		}
	}
	return SolutionResult{Notes: notes}
}

// stringifyJSON renders any value as compact JSON, falling back to the empty
// string on marshal failure (which cannot happen for decoded JSON values).
func stringifyJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
