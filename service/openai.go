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
	openAIAPIURL       = "https://api.openai.com/v1/chat/completions"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAIEngine talks to the OpenAI chat completions API
type OpenAIEngine struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	Temperature    float64               `json:"temperature"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAIEngine(apiKey, model string, timeout time.Duration) *OpenAIEngine {
	if model == "" {
		model = openAIDefaultModel
	}
	return &OpenAIEngine{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (e *OpenAIEngine) Name() string      { return "openai" }
func (e *OpenAIEngine) ModelName() string { return e.model }

func (e *OpenAIEngine) generate(ctx context.Context, system, prompt string, wantJSON bool) (string, error) {
	reqBody := openAIRequest{
		Model: e.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
	}
	if wantJSON {
		reqBody.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	} else {
		reqBody.Temperature = 0.3
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindEngine, err, "openai connection failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindEngine, err, "failed to read openai response")
	}

	var result openAIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperr.Wrap(apperr.KindPayload, err, "failed to parse openai response")
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", apperr.New(apperr.KindEngine, "openai returned %d: %s", resp.StatusCode, msg)
	}

	if len(result.Choices) == 0 {
		return "", apperr.New(apperr.KindPayload, "openai response contained no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// Analyze requests clause extraction and risk assessment in one call
func (e *OpenAIEngine) Analyze(ctx context.Context, text, contractType string) (*AnalysisPayload, error) {
	raw, err := e.generate(ctx, analysisSystemPrompt(contractType), analysisUserPrompt(text, contractType), true)
	if err != nil {
		return nil, err
	}
	return parseAnalysisPayload([]byte(raw), contractType)
}

// Compare requests a structured diff of two contract texts
func (e *OpenAIEngine) Compare(ctx context.Context, textA, textB, contractType string) (*ComparisonPayload, error) {
	raw, err := e.generate(ctx, comparisonSystemPrompt(), comparisonUserPrompt(textA, textB, contractType), true)
	if err != nil {
		return nil, err
	}
	return parseComparisonPayload([]byte(raw))
}

// Summarize writes a plain-text executive summary
func (e *OpenAIEngine) Summarize(ctx context.Context, extraction *model.ExtractionData, risk *RiskPayload) (string, error) {
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
