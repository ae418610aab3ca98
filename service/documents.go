package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
	"github.com/saagar210/LegalDocsReview/pkg/logger"
)

// ObjectStore is the subset of storage operations the document service needs
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, objectName string) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// DocumentService handles the document lifecycle up to analysis: upload,
// text extraction and deletion. Analysis itself belongs to the Analyzer.
type DocumentService struct {
	registry  *Registry
	storage   ObjectStore
	extractor TextExtractor
	store     *DocumentStore
}

func NewDocumentService(registry *Registry, storage ObjectStore, extractor TextExtractor, store *DocumentStore) *DocumentService {
	return &DocumentService{
		registry:  registry,
		storage:   storage,
		extractor: extractor,
		store:     store,
	}
}

// Upload stores the file and registers a pending document
func (s *DocumentService) Upload(ctx context.Context, filename, contractType string, reader io.Reader, size int64) (*model.Document, error) {
	if !model.ValidContractType(contractType) {
		return nil, apperr.New(apperr.KindValidation, "unknown contract type: %s", contractType)
	}
	ext := strings.ToLower(path.Ext(filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".txt" {
		return nil, apperr.New(apperr.KindValidation, "unsupported file type: %s", ext)
	}

	objectName := fmt.Sprintf("documents/%s%s", uuid.New().String(), ext)
	hash, err := s.storage.UploadFile(ctx, objectName, reader, size, contentTypeFor(ext))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc, err := s.registry.CreateDocument(ctx, &model.Document{
		Filename:     filename,
		OriginalPath: filename,
		StoredPath:   objectName,
		FileHash:     hash,
		FileSize:     size,
		ContractType: contractType,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "document uploaded",
		"document_id", doc.ID,
		"filename", filename,
		"contract_type", contractType,
		"size", size,
	)

	if s.store != nil {
		s.store.Refresh(ctx)
	}
	return doc, nil
}

// ExtractText runs text extraction on a stored document and moves it to
// extracted. Re-running extraction on an extracted or errored document is
// allowed; a document mid-analysis is not touched.
func (s *DocumentService) ExtractText(ctx context.Context, documentID string) (*model.Document, error) {
	doc, err := s.registry.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status == model.StatusAnalyzing {
		return nil, apperr.New(apperr.KindPrecondition, "document is being analyzed, cannot re-extract")
	}

	url, err := s.storage.GetPresignedURL(ctx, doc.StoredPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build file url: %w", err)
	}

	result, err := s.extractor.ExtractText(ctx, url)
	if err != nil {
		if markErr := s.registry.MarkError(ctx, documentID, err.Error()); markErr != nil && !apperr.IsNotFound(markErr) {
			logger.Error(ctx, "failed to record extraction error", "document_id", documentID, "error", markErr)
		}
		return nil, err
	}

	if err := s.registry.SetExtractedText(ctx, documentID, result.Text, result.PageCount); err != nil {
		return nil, err
	}

	logger.Info(ctx, "text extracted",
		"document_id", documentID,
		"page_count", result.PageCount,
		"chars", len(result.Text),
	)

	if s.store != nil {
		s.store.Refresh(ctx)
	}
	return s.registry.GetDocument(ctx, documentID)
}

// Delete removes the document, its dependent records and the stored file.
// The database is the source of truth: a failed file removal is logged but
// does not resurrect the document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	doc, err := s.registry.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.RemoveDocument(ctx, documentID); err != nil {
			return err
		}
	} else if err := s.registry.DeleteDocument(ctx, documentID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(ctx, doc.StoredPath); err != nil {
		logger.Warn(ctx, "stored file removal failed", "document_id", documentID, "path", doc.StoredPath, "error", err)
	}

	logger.Info(ctx, "document deleted", "document_id", documentID)
	return nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}
