package api_test

import (
	"context"

	"github.com/knowbaseai/knowbase/internal/models"
)

// mockStatsProvider implements api.StatsProvider.
type mockStatsProvider struct {
	getFn func(ctx context.Context, req models.StatsRequest) (*models.StatsReport, error)
}

func (m *mockStatsProvider) GetStats(ctx context.Context, req models.StatsRequest) (*models.StatsReport, error) {
	return m.getFn(ctx, req)
}

// mockDocumentProvider implements api.DocumentProvider.
type mockDocumentProvider struct {
	listFn   func(ctx context.Context, source, contentType string, limit, offset int) ([]models.KnowledgeDocument, bool, error)
	getFn    func(ctx context.Context, id string) (*models.KnowledgeDocument, error)
	createFn func(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error)
	deleteFn func(ctx context.Context, id string) error
	bulkFn   func(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error)
}

func (m *mockDocumentProvider) ListDocuments(ctx context.Context, source, contentType string, limit, offset int) ([]models.KnowledgeDocument, bool, error) {
	return m.listFn(ctx, source, contentType, limit, offset)
}

func (m *mockDocumentProvider) GetDocument(ctx context.Context, id string) (*models.KnowledgeDocument, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentProvider) CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
	return m.createFn(ctx, req)
}

func (m *mockDocumentProvider) DeleteDocument(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDocumentProvider) BulkIngest(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error) {
	return m.bulkFn(ctx, reqs)
}

// mockIngestionProvider implements api.IngestionHistoryProvider.
type mockIngestionProvider struct {
	getFn func(ctx context.Context) (map[string]any, error)
}

func (m *mockIngestionProvider) GetIngestionHistory(ctx context.Context) (map[string]any, error) {
	return m.getFn(ctx)
}
