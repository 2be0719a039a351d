package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"url-threat-intel/ai"
	"url-threat-intel/analysis"
	"url-threat-intel/classify"
	"url-threat-intel/store"
)

func main() {
	_ = godotenv.Load()
	cfg := LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open threat log store")
	}
	defer db.Close()

	api := &analysis.API{
		Engine: analysis.NewEngine(
			analysis.NewVirusTotalClient(cfg.VTAPIKey),
			analysis.NewResolver(cfg.DNSServer),
			analysis.NewGeoClient(),
		),
		Classifier: buildClassifier(cfg.ModelPath),
		Store:      db,
		Commentary: ai.NewGeminiClient(cfg.GeminiAPIKey),
		Whois:      analysis.LookupWhois,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/analyze", api.AnalyzeHandler)
	r.Post("/analyze/batch", api.BatchHandler)
	r.Get("/logs", api.LogsHandler)
	r.Get("/", analysis.IndexHandler)

	logrus.WithField("port", cfg.Port).Info("threat intelligence service listening")
	logrus.Info("Endpoints:")
	logrus.Info("  POST /analyze        - score a single URL")
	logrus.Info("  POST /analyze/batch  - score a batch of URLs")
	logrus.Info("  GET  /logs           - scan history")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logrus.Fatal(err)
	}
}

// buildClassifier prefers the trained ONNX model and falls back to the
// keyword heuristic when the model cannot be loaded.
func buildClassifier(modelPath string) classify.Classifier {
	if modelPath != "" {
		model, err := classify.NewONNXClassifier(modelPath)
		if err == nil {
			return model
		}
		logrus.WithError(err).Warn("ML model unavailable, using heuristic fallback")
	} else {
		logrus.Info("no MODEL_PATH configured, using heuristic fallback")
	}
	return classify.NewHeuristicClassifier()
}
