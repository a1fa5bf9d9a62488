package normalize

import (
	"reflect"
	"testing"
)

func TestNormalizeSteps(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{
			"string sequence kept in order",
			[]any{"first", "second", "third"},
			[]string{"first", "second", "third"},
		},
		{
			"non-string elements are JSON encoded",
			[]any{"first", map[string]any{"op": "add"}, float64(3)},
			[]string{"first", `{"op":"add"}`, "3"},
		},
		{
			"multi-line string splits on lines",
			"Step one\nStep two\nStep three",
			[]string{"Step one", "Step two", "Step three"},
		},
		{
			"windows line endings",
			"Step one\r\nStep two",
			[]string{"Step one", "Step two"},
		},
		{
			"numbered markers",
			"1. Multiply both sides 2. Simplify 3) Check the result",
			[]string{"Multiply both sides", "Simplify", "Check the result"},
		},
		{
			"sentence fallback",
			"First, do A. Then do B.",
			[]string{"First, do A.", "Then do B."},
		},
		{
			"single step",
			"Just compute it",
			[]string{"Just compute it"},
		},
		{
			"fenced block stripped before splitting",
			"```\nStep one\nStep two\n```",
			[]string{"Step one", "Step two"},
		},
		{
			"empty string",
			"",
			nil,
		},
		{
			"empty sequence",
			[]any{},
			nil,
		},
		{
			"object becomes single encoded step",
			map[string]any{"k": "v"},
			[]string{`{"k":"v"}`},
		},
		{
			"unsupported type",
			float64(5),
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSteps(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeSteps(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitSentences_TrailingEndingKept(t *testing.T) {
	got := splitSentences("Add 2. Divide by 3?")
	want := []string{"Add 2.", "Divide by 3?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitSentences = %#v, want %#v", got, want)
	}
}
