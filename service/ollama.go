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

// OllamaEngine talks to a local Ollama server
type OllamaEngine struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func NewOllamaEngine(baseURL, model string, timeout time.Duration) *OllamaEngine {
	return &OllamaEngine{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (e *OllamaEngine) Name() string      { return "ollama" }
func (e *OllamaEngine) ModelName() string { return e.model }

func (e *OllamaEngine) generate(ctx context.Context, system, prompt string, wantJSON bool) (string, error) {
	reqBody := ollamaRequest{
		Model:  e.model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1,
			NumPredict:  4096,
		},
	}
	if wantJSON {
		reqBody.Format = "json"
	} else {
		reqBody.Options.Temperature = 0.3
		reqBody.Options.NumPredict = 2048
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindEngine, err, "ollama connection failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindEngine, err, "failed to read ollama response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperr.New(apperr.KindEngine, "ollama returned %d: %s", resp.StatusCode, string(body))
	}

	var result ollamaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperr.Wrap(apperr.KindPayload, err, "failed to parse ollama response")
	}

	return result.Response, nil
}

// Analyze requests clause extraction and risk assessment in one call
func (e *OllamaEngine) Analyze(ctx context.Context, text, contractType string) (*AnalysisPayload, error) {
	raw, err := e.generate(ctx, analysisSystemPrompt(contractType), analysisUserPrompt(text, contractType), true)
	if err != nil {
		return nil, err
	}
	return parseAnalysisPayload([]byte(raw), contractType)
}

// Compare requests a structured diff of two contract texts
func (e *OllamaEngine) Compare(ctx context.Context, textA, textB, contractType string) (*ComparisonPayload, error) {
	raw, err := e.generate(ctx, comparisonSystemPrompt(), comparisonUserPrompt(textA, textB, contractType), true)
	if err != nil {
		return nil, err
	}
	return parseComparisonPayload([]byte(raw))
}

// Summarize writes a plain-text executive summary
func (e *OllamaEngine) Summarize(ctx context.Context, extraction *model.ExtractionData, risk *RiskPayload) (string, error) {
	extJSON, err := json.Marshal(extraction)
	if err != nil {
		return "", fmt.Errorf("failed to marshal extraction: %w", err)
	}
	riskJSON, err := json.Marshal(risk)
	if err != nil {
		return "", fmt.Errorf("failed to marshal risk: %w", err)
	}
	return e.generate(ctx, summarySystemPrompt(), summaryUserPrompt(string(extJSON), string(riskJSON)), false)
}
