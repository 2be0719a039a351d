package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"url-threat-intel/classify"
	"url-threat-intel/store"
)

// Commentator produces optional AI safety commentary for a verdict.
type Commentator interface {
	Commentary(ctx context.Context, url, country, severity, reason string) (string, error)
}

// WhoisLookup returns domain registration enrichment.
type WhoisLookup func(domain string) WhoisInfo

// API is the HTTP serving layer. All collaborators are injected; handlers
// hold no global state.
type API struct {
	Engine     *Engine
	Classifier classify.Classifier
	Store      *store.Store
	Commentary Commentator
	Whois      WhoisLookup
}

type AnalyzeRequest struct {
	URL string `json:"url"`
}

type BatchRequest struct {
	URLs []string `json:"urls"`
}

type AnalyzeResponse struct {
	URL          string     `json:"url"`
	Prediction   string     `json:"prediction"`
	Confidence   float64    `json:"confidence"`
	RiskScore    float64    `json:"risk_score"`
	Severity     string     `json:"severity"`
	Reason       string     `json:"reason"`
	VTMalicious  int        `json:"vt_malicious"`
	VTSuspicious int        `json:"vt_suspicious"`
	Country      string     `json:"country"`
	Domain       DomainInfo `json:"domain"`
	Geo          *GeoInfo   `json:"geo,omitempty"`
	Whois        *WhoisInfo `json:"whois,omitempty"`
	Commentary   string     `json:"commentary,omitempty"`
	Error        string     `json:"error,omitempty"`
	Timestamp    string     `json:"timestamp"`
}

type BatchResponse struct {
	Results []AnalyzeResponse `json:"results"`
}

// AnalyzeHandler scores a single URL and appends the verdict to the scan log.
func (a *API) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	logrus.WithField("url", req.URL).Info("[Analyze] scoring URL")
	resp := a.analyzeOne(r.Context(), req.URL, true)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// BatchHandler scores every URL concurrently. Results are returned in input
// order regardless of completion order, and a failed task yields the
// safe-default entry for its slot rather than aborting the batch.
func (a *API) BatchHandler(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if len(req.URLs) == 0 {
		http.Error(w, "urls required", http.StatusBadRequest)
		return
	}

	logrus.WithField("count", len(req.URLs)).Info("[Analyze] scoring batch")

	results := make([]AnalyzeResponse, len(req.URLs))
	g, ctx := errgroup.WithContext(r.Context())
	for i, rawURL := range req.URLs {
		i, rawURL := i, rawURL
		g.Go(func() error {
			results[i] = a.analyzeOne(ctx, rawURL, false)
			return nil
		})
	}
	_ = g.Wait()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BatchResponse{Results: results})
}

// LogsHandler returns the full scan history, newest first.
func (a *API) LogsHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := a.Store.List(r.Context())
	if err != nil {
		logrus.WithError(err).Error("[Logs] read failed")
		http.Error(w, "failed to read logs", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// IndexHandler serves the dashboard page.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "index.html")
}

// analyzeOne runs the full pipeline for one URL: classify, score, enrich,
// persist. It always returns a complete response; an engine failure maps to
// the safe-default verdict with the Error field set.
func (a *API) analyzeOne(ctx context.Context, rawURL string, enrich bool) AnalyzeResponse {
	label, _, probs := a.Classifier.Predict(rawURL)

	risk, failed := a.scoreURL(ctx, rawURL, label, probs)
	if failed {
		return safeDefault(rawURL)
	}

	// The original decision rule: a score of 50 or more is reported as
	// malicious, with the score itself as confidence.
	prediction := "safe"
	if risk.RiskScore >= 50 {
		prediction = "malicious"
	}
	confidence := risk.RiskScore / 100.0

	country := CountryFromTLD(rawURL)
	if risk.Geo != nil && risk.Geo.Country != "" {
		country = risk.Geo.Country
	}

	resp := AnalyzeResponse{
		URL:          rawURL,
		Prediction:   prediction,
		Confidence:   confidence,
		RiskScore:    risk.RiskScore,
		Severity:     risk.Severity,
		Reason:       risk.Reason,
		VTMalicious:  risk.VT.Malicious,
		VTSuspicious: risk.VT.Suspicious,
		Country:      country,
		Domain:       risk.Domain,
		Geo:          risk.Geo,
		Timestamp:    time.Now().Format(time.RFC3339),
	}

	if enrich {
		if a.Whois != nil && risk.Domain.Domain != "" {
			if info := a.Whois(risk.Domain.Domain); info != (WhoisInfo{}) {
				resp.Whois = &info
			}
		}
		if a.Commentary != nil {
			text, err := a.Commentary.Commentary(ctx, rawURL, country, risk.Severity, risk.Reason)
			if err != nil {
				logrus.WithError(err).Debug("[Analyze] commentary unavailable")
			}
			resp.Commentary = text
		}
	}

	if err := a.Store.Append(ctx, store.Entry{
		URL:          rawURL,
		Prediction:   prediction,
		Confidence:   confidence * 100,
		RiskScore:    risk.RiskScore,
		Severity:     risk.Severity,
		VTMalicious:  risk.VT.Malicious,
		VTSuspicious: risk.VT.Suspicious,
		Country:      country,
	}); err != nil {
		logrus.WithError(err).Error("[Analyze] failed to persist log entry")
	}

	return resp
}

// scoreURL shields callers from an unexpected panic inside the engine, the
// one failure class the serving layer must absorb.
func (a *API) scoreURL(ctx context.Context, rawURL, label string, probs map[string]float64) (res RiskResult, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"url": rawURL, "panic": r}).
				Error("[Analyze] risk engine failure")
			failed = true
		}
	}()
	res = a.Engine.ComputeRiskScore(ctx, rawURL, label, probs)
	return res, false
}

// safeDefault is the verdict returned when scoring itself fails: no threat
// claim either way, flagged so a consumer never mistakes it for a real scan.
func safeDefault(rawURL string) AnalyzeResponse {
	return AnalyzeResponse{
		URL:        rawURL,
		Prediction: "error",
		RiskScore:  0,
		Severity:   SeverityLow,
		Reason:     "Analysis failed; no verdict produced.",
		Country:    "Unknown",
		Error:      "analysis failed",
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}
