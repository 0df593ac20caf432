package service_test

import (
	"context"

	"github.com/knowbaseai/knowbase/internal/models"
)

// mockDocumentLister implements service.DocumentLister for testing.
type mockDocumentLister struct {
	listAllFn func(ctx context.Context, filter models.DateFilter) ([]models.KnowledgeDocument, error)
}

func (m *mockDocumentLister) ListAll(ctx context.Context, filter models.DateFilter) ([]models.KnowledgeDocument, error) {
	return m.listAllFn(ctx, filter)
}

// mockIngestionStore implements service.IngestionHistoryReader and
// service.IngestionRecorder for testing.
type mockIngestionStore struct {
	getFn    func(ctx context.Context) (map[string]any, error)
	recordFn func(ctx context.Context, count int) error
}

func (m *mockIngestionStore) GetIngestionHistory(ctx context.Context) (map[string]any, error) {
	if m.getFn == nil {
		return nil, models.ErrIngestionHistoryNotFound
	}

	return m.getFn(ctx)
}

func (m *mockIngestionStore) RecordIngestion(ctx context.Context, count int) error {
	if m.recordFn == nil {
		return nil
	}

	return m.recordFn(ctx, count)
}

// mockDocumentStore implements service.DocumentStore for testing.
type mockDocumentStore struct {
	listFn   func(ctx context.Context, source, contentType string, limit, offset int) ([]models.KnowledgeDocument, bool, error)
	getFn    func(ctx context.Context, id string) (*models.KnowledgeDocument, error)
	createFn func(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error)
	deleteFn func(ctx context.Context, id string) error
	bulkFn   func(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error)
}

func (m *mockDocumentStore) ListDocuments(ctx context.Context, source, contentType string, limit, offset int) ([]models.KnowledgeDocument, bool, error) {
	return m.listFn(ctx, source, contentType, limit, offset)
}

func (m *mockDocumentStore) GetDocument(ctx context.Context, id string) (*models.KnowledgeDocument, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentStore) CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
	return m.createFn(ctx, req)
}

func (m *mockDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDocumentStore) BulkUpsertDocuments(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error) {
	return m.bulkFn(ctx, reqs)
}
