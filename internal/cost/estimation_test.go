package cost

import (
	"math"
	"strings"
	"testing"
)

func TestEstimateTokenCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace", "  \n ", 0},
		{"seven chars", "Arsenal", 2},
		{"fourteen chars", "Arsenal Chelse", 4},
		{"multibyte counts runes", "Ødegaard", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokenCount(tt.text); got != tt.want {
				t.Errorf("EstimateTokenCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestPricingFor(t *testing.T) {
	tests := []struct {
		model string
		want  string
		ok    bool
	}{
		{"gemini-2.0-flash", "gemini-2.0-flash", true},
		{"Gemini-1.5-Pro", "gemini-1.5-pro", true},
		{"gemini-1.5-flash-latest", "gemini-1.5-flash", true},
		{"gemini-1.5-flash-002", "gemini-1.5-flash", true},
		{"gpt-4", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			p, ok := PricingFor(tt.model)
			if ok != tt.ok || p.Model != tt.want {
				t.Errorf("PricingFor(%q) = %q, %v", tt.model, p.Model, ok)
			}
		})
	}
}

func TestEstimateCall(t *testing.T) {
	// 3500 chars -> 1000 tokens
	prompt := strings.Repeat("abcde", 700)
	e := EstimateCall("gemini-2.0-flash", prompt, prompt)

	if e.InputTokens != 1000 || e.OutputTokens != 1000 {
		t.Fatalf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	if !e.Priced {
		t.Fatal("expected priced estimate")
	}
	if math.Abs(e.TotalCost-0.0005) > 1e-9 {
		t.Errorf("total cost = %v, want 0.0005", e.TotalCost)
	}

	unknown := EstimateCall("mystery", "abc", "")
	if unknown.Priced || unknown.TotalCost != 0 || unknown.InputTokens != 1 {
		t.Errorf("unknown model estimate = %+v", unknown)
	}
}
