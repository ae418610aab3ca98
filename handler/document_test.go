package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/service"
)

type stubObjectStore struct{}

func (stubObjectStore) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	io.Copy(io.Discard, reader)
	return "deadbeef", nil
}

func (stubObjectStore) GetPresignedURL(ctx context.Context, objectName string) (string, error) {
	return "http://storage.local/" + objectName, nil
}

func (stubObjectStore) DeleteFile(ctx context.Context, objectName string) error { return nil }

type stubExtractor struct{}

func (stubExtractor) ExtractText(ctx context.Context, fileURL string) (*service.TextExtraction, error) {
	return &service.TextExtraction{Text: "contract text", PageCount: 1}, nil
}

func newDocumentRouter(t *testing.T) (*gin.Engine, *service.Registry) {
	t.Helper()
	reg, err := service.OpenRegistry(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("Failed to open registry: %v", err)
	}

	store := service.NewDocumentStore(reg)
	docs := service.NewDocumentService(reg, stubObjectStore{}, stubExtractor{}, store)
	h := NewDocumentHandler(docs, store, reg)

	router := gin.New()
	router.POST("/documents/upload", h.Upload)
	router.GET("/documents", h.List)
	router.GET("/documents/:id", h.Get)
	router.GET("/documents/:id/status", h.GetStatus)
	router.POST("/documents/:id/extract", h.Extract)
	router.DELETE("/documents/:id", h.Delete)
	return router, reg
}

func multipartUpload(t *testing.T, filename, contractType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	fw.Write([]byte("%PDF-1.4 test content"))
	if contractType != "" {
		w.WriteField("contract_type", contractType)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestDocumentUploadEndpoint(t *testing.T) {
	router, _ := newDocumentRouter(t)

	body, contentType := multipartUpload(t, "nda.pdf", model.ContractTypeNDA)
	req := httptest.NewRequest("POST", "/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var doc model.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if doc.Status != model.StatusPending {
		t.Errorf("Expected status pending, got %s", doc.Status)
	}
}

func TestDocumentUploadEndpointRejectsMissingFields(t *testing.T) {
	router, _ := newDocumentRouter(t)

	// no contract type
	body, contentType := multipartUpload(t, "nda.pdf", "")
	req := httptest.NewRequest("POST", "/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing contract_type, got %d", w.Code)
	}

	// unknown contract type
	body, contentType = multipartUpload(t, "nda.pdf", "employment")
	req = httptest.NewRequest("POST", "/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown contract_type, got %d", w.Code)
	}
}

func TestDocumentListEndpoint(t *testing.T) {
	router, reg := newDocumentRouter(t)

	if _, err := reg.CreateDocument(context.Background(), &model.Document{
		Filename:     "a.pdf",
		OriginalPath: "a.pdf",
		StoredPath:   "documents/a.pdf",
		FileHash:     "abc",
		FileSize:     10,
		ContractType: model.ContractTypeNDA,
	}); err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	req := httptest.NewRequest("GET", "/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Documents []model.Document     `json:"documents"`
		Stats     *model.DocumentStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Documents) != 1 {
		t.Errorf("Expected 1 document, got %d", len(response.Documents))
	}
	if response.Stats == nil || response.Stats.Total != 1 {
		t.Error("Expected stats with total 1")
	}
}

func TestDocumentGetEndpointNotFound(t *testing.T) {
	router, _ := newDocumentRouter(t)

	req := httptest.NewRequest("GET", "/documents/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestDocumentExtractAndStatusEndpoints(t *testing.T) {
	router, reg := newDocumentRouter(t)

	doc, err := reg.CreateDocument(context.Background(), &model.Document{
		Filename:     "a.pdf",
		OriginalPath: "a.pdf",
		StoredPath:   "documents/a.pdf",
		FileHash:     "abc",
		FileSize:     10,
		ContractType: model.ContractTypeNDA,
	})
	if err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	req := httptest.NewRequest("POST", "/documents/"+doc.ID+"/extract", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/documents/"+doc.ID+"/status", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var status struct {
		ProcessingStatus model.Status `json:"processing_status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if status.ProcessingStatus != model.StatusExtracted {
		t.Errorf("Expected extracted, got %s", status.ProcessingStatus)
	}
}

func TestDocumentDeleteEndpoint(t *testing.T) {
	router, reg := newDocumentRouter(t)

	doc, err := reg.CreateDocument(context.Background(), &model.Document{
		Filename:     "a.pdf",
		OriginalPath: "a.pdf",
		StoredPath:   "documents/a.pdf",
		FileHash:     "abc",
		FileSize:     10,
		ContractType: model.ContractTypeNDA,
	})
	if err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/documents/"+doc.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	req = httptest.NewRequest("DELETE", "/documents/"+doc.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for second delete, got %d", w.Code)
	}
}
