package normalize

import "testing"

func TestCleanLatex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain passthrough", `x^2 + 1`, `x^2 + 1`},
		{"collapses doubled backslashes", `\\frac{1}{2}`, `\frac{1}{2}`},
		{"collapses longer runs", `\\\\sqrt{2}`, `\sqrt{2}`},
		{"strips code fence", "```latex\n\\frac{a}{b}\n```", `\frac{a}{b}`},
		{"strips wrapping quotes", `"\pi r^2"`, `\pi r^2`},
		{"escaped newlines to space", `x=1\ny=2`, `x=1 y=2`},
		{"delimiter spacing", `\[x+1\]`, `\[ x+1 \]`},
		{"unwraps boxed", `\boxed{42}`, `42`},
		{"boxed with inner braces", `\boxed{\frac{1}{2}}`, `\frac{1}{2}`},
		{"boxed not at end stays", `\boxed{1} + 2`, `\boxed{1} + 2`},
		{"nested boxed fully unwrapped", `\boxed{\boxed{x}}`, `x`},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLatex(tt.in); got != tt.want {
				t.Errorf("CleanLatex(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanLatex_Idempotent(t *testing.T) {
	inputs := []string{
		`x^2 + 1`,
		`\\frac{1}{2}`,
		"```latex\n\\sqrt{2}\n```",
		`"\boxed{\pi}"`,
		`\boxed{\boxed{x}}`,
		`\[x+1\]`,
		`a\nb\rc`,
		`\\\\times 3`,
		``,
	}
	for _, in := range inputs {
		once := CleanLatex(in)
		twice := CleanLatex(once)
		if once != twice {
			t.Errorf("CleanLatex not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestLooksLikeLaTeX(t *testing.T) {
	positives := []string{
		`\frac{1}{2}`, `\sqrt{2}`, `2 \times 3`, `6 \div 2`,
		`\left( x \right)`, `a \cdot b`, `\pi r^2`, `\[x\]`, `x \\ y`,
	}
	for _, s := range positives {
		if !LooksLikeLaTeX(s) {
			t.Errorf("LooksLikeLaTeX(%q) = false, want true", s)
		}
	}

	negatives := []string{"42", "x = 3", "plain words", ""}
	for _, s := range negatives {
		if LooksLikeLaTeX(s) {
			t.Errorf("LooksLikeLaTeX(%q) = true, want false", s)
		}
	}
}
