package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Reputation struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
}

// VirusTotalClient submits URLs to the VirusTotal v3 API and retrieves
// multi-engine detection counts. Every failure mode (missing key, network
// error, non-200, malformed payload) degrades to a zero result: absence of a
// reputation signal is not evidence of safety, it just contributes nothing.
type VirusTotalClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	// AnalysisWait is how long to let VT's analysis pipeline settle before
	// the first poll. PollInterval/MaxPolls bound the retries for analyses
	// still queued after that.
	AnalysisWait time.Duration
	PollInterval time.Duration
	MaxPolls     int
}

func NewVirusTotalClient(apiKey string) *VirusTotalClient {
	return &VirusTotalClient{
		APIKey:       apiKey,
		BaseURL:      "https://www.virustotal.com",
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		AnalysisWait: 1500 * time.Millisecond,
		PollInterval: time.Second,
		MaxPolls:     2,
	}
}

// Scan submits rawURL for analysis and returns its detection counts. The
// second return value is false when no usable reputation signal was obtained.
func (c *VirusTotalClient) Scan(ctx context.Context, rawURL string) (Reputation, bool) {
	if c.APIKey == "" {
		return Reputation{}, false
	}

	analysisID, err := c.submit(ctx, rawURL)
	if err != nil {
		logrus.WithError(err).Debug("[VT] submit failed")
		return Reputation{}, false
	}

	if !sleepCtx(ctx, c.AnalysisWait) {
		return Reputation{}, false
	}

	for attempt := 0; ; attempt++ {
		rep, status, err := c.fetchAnalysis(ctx, analysisID)
		if err != nil {
			logrus.WithError(err).Debug("[VT] analysis fetch failed")
			return Reputation{}, false
		}
		if status != "queued" || attempt >= c.MaxPolls {
			return rep, true
		}
		if !sleepCtx(ctx, c.PollInterval) {
			return Reputation{}, false
		}
	}
}

func (c *VirusTotalClient) submit(ctx context.Context, rawURL string) (string, error) {
	form := url.Values{"url": {rawURL}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/v3/urls", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-apikey", c.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("submit returned status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if body.Data.ID == "" {
		return "", fmt.Errorf("submit response missing analysis id")
	}
	return body.Data.ID, nil
}

func (c *VirusTotalClient) fetchAnalysis(ctx context.Context, id string) (Reputation, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/v3/analyses/"+url.PathEscape(id), nil)
	if err != nil {
		return Reputation{}, "", err
	}
	req.Header.Set("x-apikey", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Reputation{}, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reputation{}, "", fmt.Errorf("analysis returned status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Attributes struct {
				Status string `json:"status"`
				Stats  struct {
					Malicious  int `json:"malicious"`
					Suspicious int `json:"suspicious"`
				} `json:"stats"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Reputation{}, "", fmt.Errorf("decode analysis response: %w", err)
	}

	return Reputation{
		Malicious:  body.Data.Attributes.Stats.Malicious,
		Suspicious: body.Data.Attributes.Stats.Suspicious,
	}, body.Data.Attributes.Status, nil
}

// sleepCtx waits for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
