package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/saagar210/LegalDocsReview/config"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
)

// TextExtraction is the output of one text-extraction run
type TextExtraction struct {
	Text      string
	PageCount int
}

// TextExtractor is the boundary to the external PDF text-extraction service
type TextExtractor interface {
	ExtractText(ctx context.Context, fileURL string) (*TextExtraction, error)
}

// ExtractorService calls an HTTP extraction backend with a fetchable URL for
// the stored file
type ExtractorService struct {
	config     *config.ExtractorConfig
	httpClient *http.Client
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		Text      string `json:"text"`
		PageCount int    `json:"page_count"`
	} `json:"data"`
}

func NewExtractorService(cfg *config.ExtractorConfig) *ExtractorService {
	return &ExtractorService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// ExtractText sends the stored file's URL to the extraction service and
// returns cleaned text plus a page count. A response with no extractable
// text is an error: it usually means a scanned document needing OCR.
func (s *ExtractorService) ExtractText(ctx context.Context, fileURL string) (*TextExtraction, error) {
	jsonData, err := json.Marshal(extractRequest{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/v1/extract", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEngine, err, "extraction service unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEngine, err, "failed to read extraction response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.New(apperr.KindEngine, "extraction service returned %d: %s", resp.StatusCode, string(body))
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperr.Wrap(apperr.KindPayload, err, "failed to parse extraction response")
	}
	if result.Code != 0 {
		return nil, apperr.New(apperr.KindEngine, "extraction service error: %s", result.Message)
	}

	text := cleanText(result.Data.Text)
	if text == "" {
		return nil, apperr.New(apperr.KindEngine,
			"document contains no extractable text; it may be a scanned document requiring OCR")
	}

	pageCount := result.Data.PageCount
	if pageCount <= 0 {
		pageCount = 1
	}

	return &TextExtraction{Text: text, PageCount: pageCount}, nil
}

// cleanText strips surrounding whitespace per line and drops empty lines
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
