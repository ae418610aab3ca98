package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/saagar210/LegalDocsReview/config"
	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
)

// Registry owns all persisted records. Documents are the only mutable
// entities; extractions, risk assessments, comparisons and reports are
// append-only and scoped to a document id.
type Registry struct {
	db *gorm.DB
}

// NewRegistry opens (or creates) the sqlite database and migrates the schema
func NewRegistry(cfg *config.DatabaseConfig) (*Registry, error) {
	return OpenRegistry(cfg.Path)
}

// OpenRegistry opens a registry at the given sqlite path. ":memory:" gives an
// isolated in-memory database, used by tests.
func OpenRegistry(path string) (*Registry, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Document{},
		&model.Extraction{},
		&model.RiskAssessment{},
		&model.Comparison{},
		&model.Report{},
		&model.Template{},
		&model.Setting{},
	); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return &Registry{db: db}, nil
}

// --- documents ---

// CreateDocument inserts a new document in pending status and returns it
func (r *Registry) CreateDocument(ctx context.Context, doc *model.Document) (*model.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.Status = model.StatusPending
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt

	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// GetDocument fetches a document by id
func (r *Registry) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns all documents, newest first
func (r *Registry) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document and everything scoped to it
func (r *Registry) DeleteDocument(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Document{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete document: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "document %s not found", id)
		}

		// cascade the dependent records
		if err := tx.Delete(&model.Extraction{}, "document_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete extractions: %w", err)
		}
		if err := tx.Delete(&model.RiskAssessment{}, "document_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete risk assessments: %w", err)
		}
		if err := tx.Delete(&model.Comparison{}, "document_a_id = ? OR document_b_id = ?", id, id).Error; err != nil {
			return fmt.Errorf("failed to delete comparisons: %w", err)
		}
		if err := tx.Delete(&model.Report{}, "document_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete reports: %w", err)
		}
		return nil
	})
}

// SetExtractedText stores extraction output and moves the document to
// extracted. Compare-and-set: only a document that is currently pending,
// extracted or errored may receive text; a document mid-analysis or one that
// was deleted is left alone.
func (r *Registry) SetExtractedText(ctx context.Context, id, text string, pageCount int) error {
	res := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ? AND processing_status IN ?", id,
			[]model.Status{model.StatusPending, model.StatusExtracted, model.StatusError}).
		Updates(map[string]any{
			"raw_text":          text,
			"page_count":        pageCount,
			"processing_status": model.StatusExtracted,
			"error_message":     nil,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to store extracted text: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.casFailure(ctx, id, model.StatusExtracted)
	}
	return nil
}

// UpdateStatusFrom transitions a document's status, guarded by the expected
// prior status so a racing delete or concurrent operation cannot be
// overwritten. errMsg is stored for error transitions and cleared otherwise.
func (r *Registry) UpdateStatusFrom(ctx context.Context, id string, from, to model.Status, errMsg *string) error {
	if !model.CanTransition(from, to) {
		return apperr.New(apperr.KindPrecondition, "illegal status transition %s -> %s", from, to)
	}

	res := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ? AND processing_status = ?", id, from).
		Updates(map[string]any{
			"processing_status": to,
			"error_message":     errMsg,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.casFailure(ctx, id, to)
	}
	return nil
}

// MarkError moves a document to error from whatever non-deleted state it is
// in. Failure is non-destructive: raw_text and prior analysis records are
// untouched.
func (r *Registry) MarkError(ctx context.Context, id, message string) error {
	res := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"processing_status": model.StatusError,
			"error_message":     message,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "document %s not found", id)
	}
	return nil
}

func (r *Registry) casFailure(ctx context.Context, id string, wanted model.Status) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Document{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check document: %w", err)
	}
	if count == 0 {
		return apperr.New(apperr.KindNotFound, "document %s not found", id)
	}
	return apperr.New(apperr.KindConflict, "document %s changed concurrently, refusing to move to %s", id, wanted)
}

// Stats returns the aggregate document counts
func (r *Registry) Stats(ctx context.Context) (*model.DocumentStats, error) {
	var stats model.DocumentStats
	docs := func() *gorm.DB { return r.db.WithContext(ctx).Model(&model.Document{}) }

	if err := docs().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	if err := docs().Where("processing_status = ?", model.StatusAnalyzed).Count(&stats.Analyzed).Error; err != nil {
		return nil, fmt.Errorf("failed to count analyzed: %w", err)
	}
	if err := docs().Where("processing_status IN ?", []model.Status{model.StatusPending, model.StatusExtracted}).Count(&stats.Pending).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending: %w", err)
	}
	if err := docs().Where("processing_status = ?", model.StatusError).Count(&stats.Failed).Error; err != nil {
		return nil, fmt.Errorf("failed to count failed: %w", err)
	}
	return &stats, nil
}

// --- extractions and risk assessments ---

// CompleteAnalysis finishes a successful analysis run in one transaction:
// both records are inserted and the document moves analyzing -> analyzed,
// guarded by compare-and-set. If the document was deleted or changed while
// the engine call was in flight, the whole transaction rolls back and
// nothing is persisted - a stale engine response never resurrects or
// corrupts a document.
func (r *Registry) CompleteAnalysis(ctx context.Context, documentID string, ext *model.Extraction, ra *model.RiskAssessment) error {
	if ext.ID == "" {
		ext.ID = uuid.New().String()
	}
	if ra.ID == "" {
		ra.ID = uuid.New().String()
	}
	ra.ExtractionID = ext.ID
	now := time.Now()
	ext.CreatedAt = now
	ra.CreatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Document{}).
			Where("id = ? AND processing_status = ?", documentID, model.StatusAnalyzing).
			Updates(map[string]any{
				"processing_status": model.StatusAnalyzed,
				"error_message":     nil,
				"updated_at":        now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to finish analysis: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return r.casFailure(ctx, documentID, model.StatusAnalyzed)
		}

		if err := tx.Create(ext).Error; err != nil {
			return fmt.Errorf("failed to store extraction: %w", err)
		}
		if err := tx.Create(ra).Error; err != nil {
			return fmt.Errorf("failed to store risk assessment: %w", err)
		}
		return nil
	})
}

// GetExtraction fetches a single extraction by id
func (r *Registry) GetExtraction(ctx context.Context, id string) (*model.Extraction, error) {
	var ext model.Extraction
	err := r.db.WithContext(ctx).First(&ext, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "extraction %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction: %w", err)
	}
	return &ext, nil
}

// ListExtractions returns a document's extractions, newest first. Only the
// first entry is authoritative for display.
func (r *Registry) ListExtractions(ctx context.Context, documentID string) ([]model.Extraction, error) {
	var exts []model.Extraction
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&exts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	return exts, nil
}

// ListRiskAssessments returns a document's assessments, newest first
func (r *Registry) ListRiskAssessments(ctx context.Context, documentID string) ([]model.RiskAssessment, error) {
	var ras []model.RiskAssessment
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&ras).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list risk assessments: %w", err)
	}
	return ras, nil
}

// RiskDistribution counts assessments by risk level
func (r *Registry) RiskDistribution(ctx context.Context) (*model.RiskDistribution, error) {
	var dist model.RiskDistribution
	ras := func() *gorm.DB { return r.db.WithContext(ctx).Model(&model.RiskAssessment{}) }

	if err := ras().Where("risk_level = ?", model.RiskLow).Count(&dist.Low).Error; err != nil {
		return nil, fmt.Errorf("failed to count low: %w", err)
	}
	if err := ras().Where("risk_level = ?", model.RiskMedium).Count(&dist.Medium).Error; err != nil {
		return nil, fmt.Errorf("failed to count medium: %w", err)
	}
	if err := ras().Where("risk_level = ?", model.RiskHigh).Count(&dist.High).Error; err != nil {
		return nil, fmt.Errorf("failed to count high: %w", err)
	}
	return &dist, nil
}

// --- comparisons ---

// AppendComparison stores a comparison record
func (r *Registry) AppendComparison(ctx context.Context, cmp *model.Comparison) (*model.Comparison, error) {
	if cmp.ID == "" {
		cmp.ID = uuid.New().String()
	}
	cmp.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(cmp).Error; err != nil {
		return nil, fmt.Errorf("failed to store comparison: %w", err)
	}
	return cmp, nil
}

// ListComparisons returns comparisons involving the document, newest first
func (r *Registry) ListComparisons(ctx context.Context, documentID string) ([]model.Comparison, error) {
	var cmps []model.Comparison
	err := r.db.WithContext(ctx).
		Where("document_a_id = ? OR document_b_id = ?", documentID, documentID).
		Order("created_at DESC").
		Find(&cmps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	return cmps, nil
}

// --- reports ---

// AppendReport stores a report record
func (r *Registry) AppendReport(ctx context.Context, rep *model.Report) (*model.Report, error) {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	rep.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}
	return rep, nil
}

// ListReports returns a document's reports, newest first
func (r *Registry) ListReports(ctx context.Context, documentID string) ([]model.Report, error) {
	var reps []model.Report
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&reps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reps, nil
}

// --- templates ---

// CreateTemplate stores a reference template
func (r *Registry) CreateTemplate(ctx context.Context, tpl *model.Template) (*model.Template, error) {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = tpl.CreatedAt
	if err := r.db.WithContext(ctx).Create(tpl).Error; err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return tpl, nil
}

// GetTemplate fetches a template by id
func (r *Registry) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	var tpl model.Template
	err := r.db.WithContext(ctx).First(&tpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "template %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &tpl, nil
}

// ListTemplates returns all templates, newest first
func (r *Registry) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var tpls []model.Template
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tpls).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return tpls, nil
}

// DeleteTemplate removes a template
func (r *Registry) DeleteTemplate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Template{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete template: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "template %s not found", id)
	}
	return nil
}

// --- settings ---

// GetSetting returns a setting value, or nil when unset
func (r *Registry) GetSetting(ctx context.Context, key string) (*string, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load setting: %w", err)
	}
	return &s.Value, nil
}

// SetSetting creates or replaces a setting
func (r *Registry) SetSetting(ctx context.Context, key, value string) error {
	s := model.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Save(&s).Error
	if err != nil {
		return fmt.Errorf("failed to store setting: %w", err)
	}
	return nil
}

// ListSettings returns every persisted setting
func (r *Registry) ListSettings(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	if err := r.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// DeleteSetting removes a setting; deleting an absent key is not an error
func (r *Registry) DeleteSetting(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Delete(&model.Setting{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

// ProviderSettings resolves the typed provider configuration: the settings
// table first, config defaults second.
func (r *Registry) ProviderSettings(ctx context.Context, defaults *config.EngineConfig) (*model.ProviderSettings, error) {
	ps := &model.ProviderSettings{
		AIProvider:  defaults.Provider,
		OllamaURL:   defaults.OllamaURL,
		OllamaModel: defaults.OllamaModel,
	}

	overrides := map[string]*string{
		model.SettingAIProvider:   &ps.AIProvider,
		model.SettingOllamaURL:    &ps.OllamaURL,
		model.SettingOllamaModel:  &ps.OllamaModel,
		model.SettingClaudeAPIKey: &ps.ClaudeAPIKey,
		model.SettingOpenAIAPIKey: &ps.OpenAIAPIKey,
	}
	for key, target := range overrides {
		val, err := r.GetSetting(ctx, key)
		if err != nil {
			return nil, err
		}
		if val != nil && *val != "" {
			*target = *val
		}
	}
	return ps, nil
}
