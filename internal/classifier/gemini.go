package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"

	"pulsecheck-backend/internal/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	// Upper bound on a single classification call. The Gemini API can hang;
	// the contract is that Classify returns within this bound no matter what.
	classifyTimeout = 10 * time.Second
)

// Gemini classifies feedback by prompting the Gemini generateContent API.
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     echo.Logger
}

// NewGemini creates a model-backed classifier using the given API key and
// model name.
func NewGemini(apiKey, model string, logger echo.Logger) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		timeout: classifyTimeout,
		httpClient: &http.Client{
			Timeout: 0,
		},
		logger: logger,
	}
}

func (g *Gemini) ModelBacked() bool { return true }

// generateRequest is the JSON body for POST :generateContent.
type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

// Classify prompts the model for exactly one category name and normalizes
// whatever comes back. Any transport, status, or decoding failure maps to
// models.CategoryError.
func (g *Gemini) Classify(ctx context.Context, text string) models.Category {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Categorize this student feedback into exactly one of these three categories: 'Concerns', 'Appreciation', or 'Suggestions'. Respond with ONLY the category name. Feedback: %q", text)

	raw, err := g.generateContent(ctx, prompt)
	if err != nil {
		g.logger.Errorf("classification failed for %q: %v", text, err)
		return models.CategoryError
	}

	return Normalize(raw)
}

// generateContent calls the Gemini REST API and extracts the first
// candidate's text.
func (g *Gemini) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate: unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	result := gjson.GetBytes(payload, "candidates.0.content.parts.0.text")
	if !result.Exists() {
		return "", fmt.Errorf("generate: no candidate text in response")
	}

	return strings.TrimSpace(result.String()), nil
}
