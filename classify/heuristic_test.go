package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicPredictSuspicious(t *testing.T) {
	h := NewHeuristicClassifier()

	for _, rawURL := range []string{
		"https://secure-LOGIN.example.com",
		"http://example.com/reset-password",
		"https://paypal.example.net/verify",
		"http://win-a-prize.example.org",
	} {
		label, conf, probs := h.Predict(rawURL)
		assert.Equal(t, LabelPhishingCredential, label, rawURL)
		assert.Equal(t, 0.7, conf, rawURL)
		assert.Equal(t, 0.7, probs[LabelPhishingCredential], rawURL)
	}
}

func TestHeuristicPredictBenign(t *testing.T) {
	h := NewHeuristicClassifier()

	label, conf, probs := h.Predict("https://news.example.com/articles/today")
	assert.Equal(t, LabelBenign, label)
	assert.Equal(t, 0.6, conf)
	assert.Equal(t, 0.6, probs[LabelBenign])
}

func TestHeuristicDistributionCoversAllLabels(t *testing.T) {
	h := NewHeuristicClassifier()

	for _, rawURL := range []string{"https://example.com", "https://example.com/login"} {
		label, conf, probs := h.Predict(rawURL)
		require.Len(t, probs, len(Labels))
		for _, l := range Labels {
			assert.Contains(t, probs, l)
		}
		// Predicted label carries the reported confidence.
		assert.Equal(t, conf, probs[label])
	}
}
