package cost

import (
	"math"
	"strings"
	"unicode/utf8"
)

// GeminiPricing represents the current pricing for Gemini models
type GeminiPricing struct {
	Model                 string
	InputCostPer1MTokens  float64 // Cost per 1M input tokens in USD
	OutputCostPer1MTokens float64 // Cost per 1M output tokens in USD
}

// PricingTable contains Gemini text pricing as of 2025
var PricingTable = map[string]GeminiPricing{
	"gemini-2.0-flash": {
		Model:                 "gemini-2.0-flash",
		InputCostPer1MTokens:  0.10,
		OutputCostPer1MTokens: 0.40,
	},
	"gemini-2.0-flash-lite": {
		Model:                 "gemini-2.0-flash-lite",
		InputCostPer1MTokens:  0.075,
		OutputCostPer1MTokens: 0.30,
	},
	"gemini-1.5-flash": {
		Model:                 "gemini-1.5-flash",
		InputCostPer1MTokens:  0.075,
		OutputCostPer1MTokens: 0.30,
	},
	"gemini-1.5-pro": {
		Model:                 "gemini-1.5-pro",
		InputCostPer1MTokens:  1.25,
		OutputCostPer1MTokens: 5.00,
	},
}

// PricingFor looks up a model, ignoring a "-latest" or "-00N" version suffix.
func PricingFor(model string) (GeminiPricing, bool) {
	model = strings.ToLower(strings.TrimSpace(model))
	if p, ok := PricingTable[model]; ok {
		return p, true
	}
	if i := strings.LastIndex(model, "-"); i > 0 {
		suffix := model[i+1:]
		if suffix == "latest" || strings.HasPrefix(suffix, "00") {
			p, ok := PricingTable[model[:i]]
			return p, ok
		}
	}
	return GeminiPricing{}, false
}

// EstimateTokenCount provides a rough estimation of token count for text
// This is a simplified approximation: 1 token ≈ 3.5 characters
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(utf8.RuneCountInString(text)) / 3.5))
}

// CallEstimate is the estimated usage and cost of one model call
type CallEstimate struct {
	Model        string
	InputTokens  int
	OutputTokens int
	InputCost    float64
	OutputCost   float64
	TotalCost    float64
	Priced       bool // false when the model is not in PricingTable
}

// EstimateCall estimates tokens and cost for a prompt and its completion.
func EstimateCall(model, prompt, completion string) CallEstimate {
	e := CallEstimate{
		Model:        model,
		InputTokens:  EstimateTokenCount(prompt),
		OutputTokens: EstimateTokenCount(completion),
	}
	pricing, ok := PricingFor(model)
	if !ok {
		return e
	}
	e.Priced = true
	e.InputCost = float64(e.InputTokens) / 1_000_000 * pricing.InputCostPer1MTokens
	e.OutputCost = float64(e.OutputTokens) / 1_000_000 * pricing.OutputCostPer1MTokens
	e.TotalCost = e.InputCost + e.OutputCost
	return e
}
