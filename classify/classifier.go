// Package classify supplies the threat-label prediction consumed by the risk
// engine. Predictions come from a trained ONNX model when one is available,
// and from a keyword heuristic otherwise; the engine is agnostic to which.
package classify

// The fixed threat-category label set.
const (
	LabelBenign             = "benign"
	LabelPhishingCredential = "phishingCredential"
	LabelMalwareSite        = "malwareSite"
	LabelAdFraud            = "adFraud"
	LabelFinancialScam      = "financialScam"
)

// Labels is the model's output order.
var Labels = []string{
	LabelBenign,
	LabelPhishingCredential,
	LabelMalwareSite,
	LabelAdFraud,
	LabelFinancialScam,
}

// Classifier predicts a threat label for a URL together with its confidence
// and the full probability distribution over the label set. Implementations
// must not block indefinitely and should degrade internally rather than fail.
type Classifier interface {
	Predict(rawURL string) (label string, confidence float64, probs map[string]float64)
}
