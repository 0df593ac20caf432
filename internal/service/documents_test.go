package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/knowbaseai/knowbase/internal/models"
	"github.com/knowbaseai/knowbase/internal/service"
)

func TestCreateDocument_RecordsIngestion(t *testing.T) {
	t.Parallel()

	var recorded int

	store := &mockDocumentStore{
		createFn: func(_ context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
			return &models.KnowledgeDocument{ID: req.ID, Title: req.Title}, nil
		},
	}
	ingestion := &mockIngestionStore{
		recordFn: func(_ context.Context, count int) error {
			recorded += count

			return nil
		},
	}

	svc := service.NewDocumentService(store, ingestion, testLogger())

	doc, err := svc.CreateDocument(context.Background(), models.CreateDocumentRequest{ID: "doc-1", Title: "Intro"})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if doc.ID != "doc-1" {
		t.Errorf("id = %q, want doc-1", doc.ID)
	}

	if recorded != 1 {
		t.Errorf("recorded = %d, want 1", recorded)
	}
}

func TestCreateDocument_StoreFailure(t *testing.T) {
	t.Parallel()

	recorded := false

	store := &mockDocumentStore{
		createFn: func(_ context.Context, _ models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
			return nil, models.ErrDuplicateKey
		},
	}
	ingestion := &mockIngestionStore{
		recordFn: func(_ context.Context, _ int) error {
			recorded = true

			return nil
		},
	}

	svc := service.NewDocumentService(store, ingestion, testLogger())

	_, err := svc.CreateDocument(context.Background(), models.CreateDocumentRequest{ID: "doc-1", Title: "Intro"})
	if !errors.Is(err, models.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}

	if recorded {
		t.Error("ingestion recorded for failed create")
	}
}

func TestCreateDocument_RecordFailureIgnored(t *testing.T) {
	t.Parallel()

	store := &mockDocumentStore{
		createFn: func(_ context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
			return &models.KnowledgeDocument{ID: req.ID, Title: req.Title}, nil
		},
	}
	ingestion := &mockIngestionStore{
		recordFn: func(_ context.Context, _ int) error {
			return errors.New("metadata table unavailable")
		},
	}

	svc := service.NewDocumentService(store, ingestion, testLogger())

	if _, err := svc.CreateDocument(context.Background(), models.CreateDocumentRequest{ID: "doc-1", Title: "Intro"}); err != nil {
		t.Fatalf("bookkeeping failure must not fail the create: %v", err)
	}
}

func TestBulkIngest_RecordsWrittenCount(t *testing.T) {
	t.Parallel()

	var recorded int

	store := &mockDocumentStore{
		bulkFn: func(_ context.Context, reqs []models.CreateDocumentRequest) (int, error) {
			return len(reqs), nil
		},
	}
	ingestion := &mockIngestionStore{
		recordFn: func(_ context.Context, count int) error {
			recorded += count

			return nil
		},
	}

	svc := service.NewDocumentService(store, ingestion, testLogger())

	written, err := svc.BulkIngest(context.Background(), []models.CreateDocumentRequest{
		{ID: "doc-1", Title: "Intro"},
		{ID: "doc-2", Title: "Scan"},
	})
	if err != nil {
		t.Fatalf("BulkIngest: %v", err)
	}

	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}

	if recorded != 2 {
		t.Errorf("recorded = %d, want 2", recorded)
	}
}

func TestBulkIngest_EmptyBatch(t *testing.T) {
	t.Parallel()

	recorded := false

	store := &mockDocumentStore{
		bulkFn: func(_ context.Context, reqs []models.CreateDocumentRequest) (int, error) {
			return len(reqs), nil
		},
	}
	ingestion := &mockIngestionStore{
		recordFn: func(_ context.Context, _ int) error {
			recorded = true

			return nil
		},
	}

	svc := service.NewDocumentService(store, ingestion, testLogger())

	written, err := svc.BulkIngest(context.Background(), nil)
	if err != nil {
		t.Fatalf("BulkIngest: %v", err)
	}

	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}

	if recorded {
		t.Error("ingestion recorded for empty batch")
	}
}

func TestGetDocument_PassThrough(t *testing.T) {
	t.Parallel()

	store := &mockDocumentStore{
		getFn: func(_ context.Context, id string) (*models.KnowledgeDocument, error) {
			if id != "doc-1" {
				return nil, models.ErrDocumentNotFound
			}

			return &models.KnowledgeDocument{ID: id, Title: "Intro"}, nil
		},
	}

	svc := service.NewDocumentService(store, &mockIngestionStore{}, testLogger())

	doc, err := svc.GetDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}

	if doc.Title != "Intro" {
		t.Errorf("title = %q, want Intro", doc.Title)
	}

	if _, err := svc.GetDocument(context.Background(), "missing"); !errors.Is(err, models.ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestDeleteDocument_PassThrough(t *testing.T) {
	t.Parallel()

	store := &mockDocumentStore{
		deleteFn: func(_ context.Context, id string) error {
			if id != "doc-1" {
				return models.ErrDocumentNotFound
			}

			return nil
		},
	}

	svc := service.NewDocumentService(store, &mockIngestionStore{}, testLogger())

	if err := svc.DeleteDocument(context.Background(), "doc-1"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	if err := svc.DeleteDocument(context.Background(), "missing"); !errors.Is(err, models.ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}
