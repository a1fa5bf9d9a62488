package normalize

// Alias tables map the many names providers use for each canonical field.
// Order is precedence: the first present key wins. The tables are exported
// configuration data, not a fixed contract; extend them as new provider
// spellings show up.
var (
	LatexAliases = []string{
		"latex", "Latex", "expression", "problem", "question", "math", "formula",
	}
	AnswerAliases = []string{
		"answer", "Answer", "solution", "result", "final", "answer_text", "answerText",
	}
	StepsAliases = []string{
		"steps", "Steps", "step-by-step", "explanation", "explanations",
		"instructions", "solution_steps", "details",
	}
	NotesAliases = []string{
		"notes", "note", "comments",
	}
)

// pickAlias returns the value of the first alias present in obj with a
// non-nil value.
func pickAlias(obj map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
