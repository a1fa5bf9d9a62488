package providers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// solvePrompt instructs the model to return the canonical solution shape.
// All providers share it so their outputs land in the same place for the
// normalizer.
const solvePrompt = `You are a careful math tutor. The user provided an image of a math problem.
Return ONLY a single JSON object with keys: "latex", "answer", "steps", "notes".
- "latex": the extracted problem as LaTeX
- "answer": the final exact answer(s)
- "steps": a numbered step-by-step solution (array or numbered text)
- "notes": ambiguous interpretations if any
Do not add any text outside the JSON.
`

// solutionSchema is the loose contract for provider solution payloads.
// Types are permissive on purpose: answers come back as strings or numbers,
// steps as arrays or one blob of numbered text.
const solutionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"latex": {"type": "string"},
		"answer": {"type": ["string", "number"]},
		"steps": {
			"anyOf": [
				{"type": "array", "items": {"type": ["string", "number", "object"]}},
				{"type": "string"}
			]
		},
		"notes": {"type": "string"}
	},
	"anyOf": [
		{"required": ["latex"]},
		{"required": ["answer"]},
		{"required": ["steps"]}
	]
}`

var compiledSolutionSchema = mustCompileSolutionSchema()

func mustCompileSolutionSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("solution.json", bytes.NewReader([]byte(solutionSchema))); err != nil {
		panic(fmt.Sprintf("providers: bad solution schema resource: %v", err))
	}
	schema, err := compiler.Compile("solution.json")
	if err != nil {
		panic(fmt.Sprintf("providers: solution schema does not compile: %v", err))
	}
	return schema
}

// ValidateSolution checks a parsed provider payload against the solution
// schema. A nil error means the payload carries at least one of the
// structured fields with a plausible type.
func ValidateSolution(v any) error {
	// Round-trip through JSON so validation sees plain decoded values.
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("solution payload not serializable: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("solution payload not decodable: %w", err)
	}
	if err := compiledSolutionSchema.Validate(doc); err != nil {
		return fmt.Errorf("solution payload does not match schema: %w", err)
	}
	return nil
}
