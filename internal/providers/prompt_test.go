package providers

import (
	"strings"
	"testing"
)

func TestValidateSolution(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{
			name: "complete solution",
			value: map[string]any{
				"latex":  "x = 2",
				"answer": "2",
				"steps":  []any{"subtract 3", "divide by 2"},
				"notes":  "",
			},
			wantErr: false,
		},
		{
			name:    "answer only",
			value:   map[string]any{"answer": 42.0},
			wantErr: false,
		},
		{
			name:    "latex only",
			value:   map[string]any{"latex": "\\frac{1}{2}"},
			wantErr: false,
		},
		{
			name:    "steps as single string",
			value:   map[string]any{"steps": "just one step"},
			wantErr: false,
		},
		{
			name:    "notes only is not a solution",
			value:   map[string]any{"notes": "could not read image"},
			wantErr: true,
		},
		{
			name:    "empty object",
			value:   map[string]any{},
			wantErr: true,
		},
		{
			name:    "latex wrong type",
			value:   map[string]any{"latex": 12.0},
			wantErr: true,
		},
		{
			name:    "steps wrong element type is allowed as string form only",
			value:   map[string]any{"steps": map[string]any{"a": 1.0}},
			wantErr: true,
		},
		{
			name:    "not an object",
			value:   []any{"a", "b"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSolution(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSolution() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSolvePrompt(t *testing.T) {
	for _, key := range []string{"latex", "answer", "steps", "notes"} {
		if !strings.Contains(solvePrompt, key) {
			t.Errorf("prompt does not mention %q", key)
		}
	}
	if !strings.Contains(solvePrompt, "JSON") {
		t.Error("prompt does not ask for JSON")
	}
}
