package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/metrics"
	"github.com/knowbaseai/knowbase/internal/models"
)

// DocumentStore is the data-access interface DocumentService depends on.
type DocumentStore interface {
	ListDocuments(ctx context.Context, source, contentType string, limit, offset int) ([]models.KnowledgeDocument, bool, error)
	GetDocument(ctx context.Context, id string) (*models.KnowledgeDocument, error)
	CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	BulkUpsertDocuments(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error)
}

// IngestionRecorder bumps the ingestion history after successful writes.
type IngestionRecorder interface {
	RecordIngestion(ctx context.Context, count int) error
}

// DocumentService wraps DocumentStore with ingestion bookkeeping: every
// successful write bumps the ingestion-history metadata the stats report
// later attaches.
type DocumentService struct {
	store     DocumentStore
	ingestion IngestionRecorder
	log       *logrus.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(store DocumentStore, ingestion IngestionRecorder, log *logrus.Logger) *DocumentService {
	return &DocumentService{store: store, ingestion: ingestion, log: log}
}

// ListDocuments returns a paginated list of documents (pass-through).
func (s *DocumentService) ListDocuments(
	ctx context.Context, source, contentType string, limit, offset int,
) ([]models.KnowledgeDocument, bool, error) {
	return s.store.ListDocuments(ctx, source, contentType, limit, offset)
}

// GetDocument returns a single document by ID (pass-through).
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*models.KnowledgeDocument, error) {
	return s.store.GetDocument(ctx, id)
}

// CreateDocument ingests a document and bumps the ingestion history.
func (s *DocumentService) CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
	doc, err := s.store.CreateDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.IngestedTotal.Inc()
	s.recordIngestion(ctx, 1)

	return doc, nil
}

// DeleteDocument removes a document by ID (pass-through).
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.store.DeleteDocument(ctx, id)
}

// BulkIngest upserts a batch of documents and bumps the ingestion history
// by the number of rows written.
func (s *DocumentService) BulkIngest(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error) {
	written, err := s.store.BulkUpsertDocuments(ctx, reqs)
	if err != nil {
		return written, err
	}

	if written > 0 {
		metrics.IngestedTotal.Add(float64(written))
		s.recordIngestion(ctx, written)
	}

	return written, nil
}

/// recordIngestion updates the ingestion metadata best-effort: bookkeeping
// must never fail a successful write.
func (s *DocumentService) recordIngestion(ctx context.Context, count int) {
	if err := s.ingestion.RecordIngestion(ctx, count); err != nil {
		s.log.WithError(err).Warn("recording ingestion history")
	}
}
