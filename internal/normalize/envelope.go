package normalize

// maxEnvelopeDepth bounds recursion while unwrapping nested chat-completion
// envelopes. Providers nest at most one level of choices/message/content, so
// a small constant is plenty.
const maxEnvelopeDepth = 3

// unwrapEnvelope peels chat-completion style wrappers off a recovered object.
// If the object has a choices array, the first choice's message content (or
// text) is extracted and the full extraction cascade is re-applied to it.
// When the envelope content cannot be re-parsed into an object, the content
// text is returned as the best available fallback.
func unwrapEnvelope(obj map[string]any, depth int) (map[string]any, string, bool) {
	if depth >= maxEnvelopeDepth {
		return obj, "", true
	}

	content, isEnvelope := relayContent(obj)
	if !isEnvelope {
		content, isEnvelope = envelopeContent(obj)
	}
	if !isEnvelope {
		return obj, "", true
	}

	switch c := content.(type) {
	case map[string]any:
		return unwrapEnvelope(c, depth+1)
	case string:
		inner, ok := objectFromText(c)
		if !ok {
			return nil, c, false
		}
		return unwrapEnvelope(inner, depth+1)
	default:
		return nil, "", false
	}
}

// relayContent peels the backend relay's {raw, parsed} wrapper. The parsed
// value wins when present; otherwise the raw string is mined for JSON. An
// object that already carries a recognizable solution field is never treated
// as a relay body, even if it happens to have a raw or parsed key.
func relayContent(obj map[string]any) (any, bool) {
	parsed, hasParsed := obj["parsed"]
	raw, hasRaw := obj["raw"]
	if !hasParsed && !hasRaw {
		return nil, false
	}
	for _, aliases := range [][]string{LatexAliases, AnswerAliases, StepsAliases, NotesAliases} {
		if _, found := pickAlias(obj, aliases); found {
			return nil, false
		}
	}
	if parsed != nil {
		return parsed, true
	}
	if s, ok := raw.(string); ok && s != "" {
		return s, true
	}
	return nil, false
}

// envelopeContent pulls the first choice's content out of a chat-completion
// response shape: {choices: [{message: {content: ...}}]} with a text field
// fallback used by some completion-style APIs.
func envelopeContent(obj map[string]any) (any, bool) {
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return nil, false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return nil, false
	}
	if msg, ok := first["message"].(map[string]any); ok {
		if content, ok := msg["content"]; ok {
			return content, true
		}
		if text, ok := msg["text"]; ok {
			return text, true
		}
	}
	if text, ok := first["text"]; ok {
		return text, true
	}
	if content, ok := first["content"]; ok {
		return content, true
	}
	return nil, false
}
