package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saagar210/LegalDocsReview/config"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
)

func extractorForServer(server *httptest.Server) *ExtractorService {
	return NewExtractorService(&config.ExtractorConfig{
		APIURL:         server.URL,
		APIToken:       "test-token",
		TimeoutSeconds: 5,
	})
}

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Missing bearer token, got %q", r.Header.Get("Authorization"))
		}

		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.URL == "" {
			t.Error("Expected file url in request")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"msg":  "",
			"data": map[string]any{
				"text":       "  THIS AGREEMENT  \n\n  is made between  \n",
				"page_count": 4,
			},
		})
	}))
	defer server.Close()

	result, err := extractorForServer(server).ExtractText(context.Background(), "http://files/doc.pdf")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if result.Text != "THIS AGREEMENT\nis made between" {
		t.Errorf("Unexpected cleaned text: %q", result.Text)
	}
	if result.PageCount != 4 {
		t.Errorf("Expected page count 4, got %d", result.PageCount)
	}
}

func TestExtractTextEmptyResultIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"msg":  "",
			"data": map[string]any{"text": "   \n  \n", "page_count": 2},
		})
	}))
	defer server.Close()

	_, err := extractorForServer(server).ExtractText(context.Background(), "http://files/scan.pdf")
	if apperr.KindOf(err) != apperr.KindEngine {
		t.Errorf("Expected engine error for empty text, got %v", err)
	}
}

func TestExtractTextServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 2,
			"msg":  "unsupported format",
		})
	}))
	defer server.Close()

	_, err := extractorForServer(server).ExtractText(context.Background(), "http://files/doc.xls")
	if apperr.KindOf(err) != apperr.KindEngine {
		t.Errorf("Expected engine error, got %v", err)
	}
}

func TestExtractTextHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := extractorForServer(server).ExtractText(context.Background(), "http://files/doc.pdf")
	if apperr.KindOf(err) != apperr.KindEngine {
		t.Errorf("Expected engine error, got %v", err)
	}
}

func TestExtractTextDefaultPageCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"msg":  "",
			"data": map[string]any{"text": "some text", "page_count": 0},
		})
	}))
	defer server.Close()

	result, err := extractorForServer(server).ExtractText(context.Background(), "http://files/doc.txt")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if result.PageCount != 1 {
		t.Errorf("Expected default page count 1, got %d", result.PageCount)
	}
}

func TestCleanText(t *testing.T) {
	in := "  line one  \n\n\t\n line two\n   \n"
	if got := cleanText(in); got != "line one\nline two" {
		t.Errorf("Unexpected cleaned text: %q", got)
	}
	if got := cleanText(""); got != "" {
		t.Errorf("Expected empty output for empty input, got %q", got)
	}
}
