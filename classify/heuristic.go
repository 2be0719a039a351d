package classify

import "strings"

// Keywords that commonly show up in credential-harvesting URLs.
var suspiciousKeywords = []string{
	"login", "password", "bank", "paypal", "bitcoin", "crypto",
	"free", "win", "prize",
}

// HeuristicClassifier is the layered-fallback predictor used when no trained
// model is available. It produces fixed approximate distributions, so
// probabilities are plausible but do not sum exactly to 1 across paths.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

func (h *HeuristicClassifier) Predict(rawURL string) (string, float64, map[string]float64) {
	lower := strings.ToLower(rawURL)

	suspicious := false
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lower, kw) {
			suspicious = true
			break
		}
	}

	if suspicious {
		return LabelPhishingCredential, 0.7, map[string]float64{
			LabelBenign:             0.2,
			LabelPhishingCredential: 0.7,
			LabelMalwareSite:        0.05,
			LabelAdFraud:            0.03,
			LabelFinancialScam:      0.02,
		}
	}

	return LabelBenign, 0.6, map[string]float64{
		LabelBenign:             0.6,
		LabelPhishingCredential: 0.2,
		LabelMalwareSite:        0.1,
		LabelAdFraud:            0.05,
		LabelFinancialScam:      0.05,
	}
}
