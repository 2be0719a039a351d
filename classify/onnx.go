package classify

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXClassifier runs the trained URL threat model. The model takes the
// lexical feature vector and emits one logit per label in the Labels order.
type ONNXClassifier struct {
	session  *ort.AdvancedSession
	input    *ort.Tensor[float32]
	output   *ort.Tensor[float32]
	fallback *HeuristicClassifier

	mu sync.Mutex
}

// NewONNXClassifier loads the model at modelPath. It errors when the model
// file or the onnxruntime shared library is missing, so the caller can fall
// back to the heuristic predictor.
func NewONNXClassifier(modelPath string) (*ONNXClassifier, error) {
	if modelPath == "" {
		return nil, errors.New("model path is empty")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	if libPath := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, FeatureCount))
	if err != nil {
		return nil, fmt.Errorf("allocate input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(Labels))))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"features"},
		[]string{"probabilities"},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	logrus.WithField("model", modelPath).Info("[Classifier] ONNX model loaded")
	return &ONNXClassifier{
		session:  session,
		input:    input,
		output:   output,
		fallback: NewHeuristicClassifier(),
	}, nil
}

func (c *ONNXClassifier) Predict(rawURL string) (string, float64, map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.input.GetData(), ExtractFeatures(rawURL).Vector())

	if err := c.session.Run(); err != nil {
		// Per-call inference failure degrades to the heuristic path instead
		// of propagating.
		logrus.WithError(err).Warn("[Classifier] inference failed, using heuristic fallback")
		return c.fallback.Predict(rawURL)
	}

	probs := softmax(c.output.GetData())

	dist := make(map[string]float64, len(Labels))
	best := 0
	for i, label := range Labels {
		dist[label] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}
	return Labels[best], probs[best], dist
}

// Close releases the ONNX session and tensors.
func (c *ONNXClassifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.Destroy()
		c.session = nil
	}
	if c.input != nil {
		c.input.Destroy()
		c.input = nil
	}
	if c.output != nil {
		c.output.Destroy()
		c.output = nil
	}
}

func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	exps := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		exps[i] = math.Exp(float64(v - maxLogit))
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}
