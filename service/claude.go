package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
)

const (
	claudeAPIURL       = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion   = "2023-06-01"
	claudeDefaultModel = "claude-3-5-sonnet-20241022"
)

// ClaudeEngine talks to the Anthropic Messages API
type ClaudeEngine struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClaudeEngine(apiKey, model string, timeout time.Duration) *ClaudeEngine {
	if model == "" {
		model = claudeDefaultModel
	}
	return &ClaudeEngine{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (e *ClaudeEngine) Name() string      { return "claude" }
func (e *ClaudeEngine) ModelName() string { return e.model }

func (e *ClaudeEngine) generate(ctx context.Context, system, prompt string) (string, error) {
	reqBody := claudeRequest{
		Model:     e.model,
		MaxTokens: 4096,
		System:    system,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", claudeAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindEngine, err, "claude connection failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindEngine, err, "failed to read claude response")
	}

	var result claudeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperr.Wrap(apperr.KindPayload, err, "failed to parse claude response")
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", apperr.New(apperr.KindEngine, "claude returned %d: %s", resp.StatusCode, msg)
	}

	if len(result.Content) == 0 {
		return "", apperr.New(apperr.KindPayload, "claude response contained no content")
	}
	return result.Content[0].Text, nil
}

// Analyze requests clause extraction and risk assessment in one call
func (e *ClaudeEngine) Analyze(ctx context.Context, text, contractType string) (*AnalysisPayload, error) {
	raw, err := e.generate(ctx, analysisSystemPrompt(contractType), analysisUserPrompt(text, contractType))
	if err != nil {
		return nil, err
	}
	return parseAnalysisPayload([]byte(raw), contractType)
}

// Compare requests a structured diff of two contract texts
func (e *ClaudeEngine) Compare(ctx context.Context, textA, textB, contractType string) (*ComparisonPayload, error) {
	raw, err := e.generate(ctx, comparisonSystemPrompt(), comparisonUserPrompt(textA, textB, contractType))
	if err != nil {
		return nil, err
	}
	return parseComparisonPayload([]byte(raw))
}

// Summarize writes a plain-text executive summary
func (e *ClaudeEngine) Summarize(ctx context.Context, extraction *model.ExtractionData, risk *RiskPayload) (string, error) {
	extJSON, err := json.Marshal(extraction)
	if err != nil {
		return "", fmt.Errorf("failed to marshal extraction: %w", err)
	}
	riskJSON, err := json.Marshal(risk)
	if err != nil {
		return "", fmt.Errorf("failed to marshal risk: %w", err)
	}
	return e.generate(ctx, summarySystemPrompt(), summaryUserPrompt(string(extJSON), string(riskJSON)))
}
