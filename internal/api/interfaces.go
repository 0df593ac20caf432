package api

import (
	"context"

	"github.com/knowbaseai/knowbase/internal/models"
)

// StatsProvider defines the statistics operations used by StatsHandler.
type StatsProvider interface {
	GetStats(ctx context.Context, req models.StatsRequest) (*models.StatsReport, error)
}

// DocumentProvider defines document operations used by DocumentHandler.
type DocumentProvider interface {
	ListDocuments(ctx context.Context, source, contentType string, limit, offset int) ([]models.KnowledgeDocument, bool, error)
	GetDocument(ctx context.Context, id string) (*models.KnowledgeDocument, error)
	CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	BulkIngest(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error)
}

// IngestionHistoryProvider defines the lookup used by IngestionHandler.
type IngestionHistoryProvider interface {
	GetIngestionHistory(ctx context.Context) (map[string]any, error)
}
