package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Severity tiers, derived deterministically from the risk score.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

type RiskResult struct {
	RiskScore float64    `json:"risk_score"`
	Severity  string     `json:"severity"`
	Reason    string     `json:"reason"`
	VT        Reputation `json:"vt"`
	Domain    DomainInfo `json:"domain"`
	Geo       *GeoInfo   `json:"geo,omitempty"`
}

// Collaborator interfaces. Each lookup is best-effort: the boolean reports
// whether a usable signal was obtained, and an unavailable signal contributes
// zero/absent to the verdict.
type ReputationLookup interface {
	Scan(ctx context.Context, rawURL string) (Reputation, bool)
}

type DomainResolver interface {
	Resolve(rawURL string) DomainInfo
}

type GeoLookup interface {
	Lookup(ctx context.Context, ip string) (GeoInfo, bool)
}

// Engine fuses the classifier's label distribution with blacklist, reputation,
// domain and geo signals into a single bounded risk score. It holds no state
// across calls; every scoring call recomputes all signals from scratch.
type Engine struct {
	Reputation ReputationLookup
	Domains    DomainResolver
	Geo        GeoLookup
}

func NewEngine(reputation ReputationLookup, domains DomainResolver, geo GeoLookup) *Engine {
	return &Engine{Reputation: reputation, Domains: domains, Geo: geo}
}

// baseRiskFunc maps model confidence to a base risk within a label's band.
type baseRiskFunc func(prob float64) float64

// Different threat categories carry different prior severities; confidence
// modulates within the category's band rather than deciding the verdict alone.
var baseRiskByLabel = map[string]baseRiskFunc{
	// High confidence in a benign call drives risk down, floored at 5: a
	// benign verdict is never zero-risk.
	"benign":             func(p float64) float64 { return math.Max(5, (1-p)*25) },
	"phishingCredential": func(p float64) float64 { return 60 + p*25 },
	"malwareSite":        func(p float64) float64 { return 70 + p*20 },
	"adFraud":            func(p float64) float64 { return 40 + p*30 },
	"financialScam":      func(p float64) float64 { return 65 + p*25 },
}

// defaultBaseRisk covers labels outside the known set.
func defaultBaseRisk(p float64) float64 { return 30 + p*20 }

const vtScoreCap = 30

// ComputeRiskScore runs the full scoring pipeline for one URL. It never
// errors: malformed label distributions and unavailable signals degrade to
// zero contributions, and the result is always a complete RiskResult.
func (e *Engine) ComputeRiskScore(ctx context.Context, rawURL, predictedLabel string, labelProbs map[string]float64) RiskResult {
	blacklisted := IsBlacklisted(rawURL)
	blacklistScore := 0.0
	if blacklisted {
		blacklistScore = 100
	}

	// Missing key yields probability 0, by the distribution contract.
	modelProb := labelProbs[predictedLabel]

	baseRisk, ok := baseRiskByLabel[predictedLabel]
	if !ok {
		baseRisk = defaultBaseRisk
	}
	mlRisk := baseRisk(modelProb)

	vt, _ := e.Reputation.Scan(ctx, rawURL)
	vtScore := math.Min(float64(vt.Malicious*10+vt.Suspicious*5), vtScoreCap)

	domainInfo := e.Domains.Resolve(rawURL)

	// Short or hyphenated registrable domains are weak suspicion signals.
	heuristic := 0
	if len(domainInfo.Domain) < 6 {
		heuristic += 5
	}
	if strings.Contains(domainInfo.Domain, "-") {
		heuristic += 5
	}

	// Informational only; never affects the numeric score.
	var geo *GeoInfo
	if domainInfo.IP != "" {
		if g, ok := e.Geo.Lookup(ctx, domainInfo.IP); ok {
			geo = &g
		}
	}

	total := round2(mlRisk + vtScore + float64(heuristic) + blacklistScore)
	if total > 100 {
		total = 100
	}

	reason := buildReason(blacklisted, modelProb, vt, heuristic)

	return RiskResult{
		RiskScore: total,
		Severity:  SeverityFor(total),
		Reason:    reason,
		VT:        vt,
		Domain:    domainInfo,
		Geo:       geo,
	}
}

// SeverityFor maps a risk score to its severity tier. Tiers are contiguous
// and exhaustive over [0,100].
func SeverityFor(score float64) string {
	switch {
	case score < 20:
		return SeverityLow
	case score < 50:
		return SeverityMedium
	case score < 80:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// buildReason assembles the rationale clauses in fixed order.
func buildReason(blacklisted bool, modelProb float64, vt Reputation, heuristic int) string {
	var parts []string
	if blacklisted {
		parts = append(parts, "URL contains known malicious patterns.")
	}
	parts = append(parts, fmt.Sprintf("Model confidence=%.2f.", modelProb))
	parts = append(parts, fmt.Sprintf("VT malicious=%d suspicious=%d.", vt.Malicious, vt.Suspicious))
	parts = append(parts, fmt.Sprintf("Heuristic=%d.", heuristic))
	return strings.Join(parts, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
