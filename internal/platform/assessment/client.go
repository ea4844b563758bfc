// Package assessment calls the external clinical assessment service that
// scores incoming patients. The core never computes clinical risk itself;
// it sends the intake record out and attaches whatever comes back.
package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/orchestra-health/orchestra/internal/domain/patient"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type assessRequest struct {
	Name     string         `json:"name"`
	Age      int            `json:"age"`
	Gender   string         `json:"gender"`
	Symptoms []string       `json:"symptoms"`
	Severity int            `json:"severity"`
	Duration string         `json:"duration"`
	History  string         `json:"history"`
	Vitals   patient.Vitals `json:"vitals"`
}

// Assess posts the patient's intake record to the assessment service and
// decodes the structured result.
func (c *Client) Assess(ctx context.Context, p *patient.Patient) (*patient.Assessment, error) {
	body, err := json.Marshal(assessRequest{
		Name:     p.Name,
		Age:      p.Age,
		Gender:   p.Gender,
		Symptoms: p.Symptoms,
		Severity: p.Severity,
		Duration: p.Duration,
		History:  p.History,
		Vitals:   p.Vitals,
	})
	if err != nil {
		return nil, fmt.Errorf("encode assessment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/assess", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build assessment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assessment service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("assessment service returned status %d", resp.StatusCode)
	}

	var a patient.Assessment
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode assessment response: %w", err)
	}

	c.logger.Info().
		Str("patient_id", p.ID.String()).
		Int("risk_score", a.RiskScore).
		Str("risk_level", string(a.RiskLevel)).
		Dur("elapsed", time.Since(start)).
		Msg("clinical assessment completed")
	return &a, nil
}
