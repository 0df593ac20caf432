package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/models"
	"github.com/knowbaseai/knowbase/internal/service"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func ts(t *testing.T, value string) *time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}

	return &parsed
}

func sampleDocs(t *testing.T) []models.KnowledgeDocument {
	t.Helper()

	return []models.KnowledgeDocument{
		{
			ID:           "doc-1",
			Title:        "Intro",
			Source:       "web",
			ContentType:  "article",
			Content:      "hello",
			QualityScore: 0.9,
			Tags:         []string{"a", "b"},
			CreatedAt:    ts(t, "2024-01-10T00:00:00Z"),
		},
		{
			ID:           "doc-2",
			Title:        "Scan",
			Source:       "web",
			ContentType:  "pdf",
			QualityScore: 0.5,
			Tags:         []string{"b"},
			CreatedAt:    ts(t, "2024-03-01T00:00:00Z"),
		},
	}
}

func TestGetStats_Aggregates(t *testing.T) {
	t.Parallel()

	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
			return sampleDocs(t), nil
		},
	}

	svc := service.NewStatsService(docs, &mockIngestionStore{}, testLogger())

	report, err := svc.GetStats(context.Background(), models.StatsRequest{})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if report.TotalItems != 2 {
		t.Fatalf("total_items = %d, want 2", report.TotalItems)
	}

	if report.BySource["web"] != 2 {
		t.Errorf("by_source[web] = %d, want 2", report.BySource["web"])
	}

	if report.DetailedBreakdown != nil {
		t.Error("detailed breakdown present without include_details")
	}
}

func TestGetStats_IncludeDetails(t *testing.T) {
	t.Parallel()

	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
			return sampleDocs(t), nil
		},
	}

	svc := service.NewStatsService(docs, &mockIngestionStore{}, testLogger())

	report, err := svc.GetStats(context.Background(), models.StatsRequest{IncludeDetails: true})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if report.DetailedBreakdown == nil {
		t.Fatal("detailed breakdown missing")
	}

	if report.DetailedBreakdown.EnhancementCoverage.TotalItems != 2 {
		t.Errorf("coverage total = %d, want 2", report.DetailedBreakdown.EnhancementCoverage.TotalItems)
	}
}

func TestGetStats_EmptyCollection(t *testing.T) {
	t.Parallel()

	historyCalled := false

	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
			return nil, nil
		},
	}
	ingestion := &mockIngestionStore{
		getFn: func(_ context.Context) (map[string]any, error) {
			historyCalled = true

			return map[string]any{"total_ingested": float64(3)}, nil
		},
	}

	svc := service.NewStatsService(docs, ingestion, testLogger())

	report, err := svc.GetStats(context.Background(), models.StatsRequest{IncludeDetails: true})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if report.TotalItems != 0 {
		t.Errorf("total_items = %d, want 0", report.TotalItems)
	}

	if report.Message != models.NoItemsMessage {
		t.Errorf("message = %q, want %q", report.Message, models.NoItemsMessage)
	}

	if report.BySource != nil || report.DetailedBreakdown != nil || report.IngestionHistory != nil {
		t.Error("empty report carries aggregation fields")
	}

	if historyCalled {
		t.Error("history lookup on empty collection")
	}
}

func TestGetStats_ListFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
			return nil, cause
		},
	}

	svc := service.NewStatsService(docs, &mockIngestionStore{}, testLogger())

	_, err := svc.GetStats(context.Background(), models.StatsRequest{})
	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.Is(err, cause) {
		t.Errorf("error chain lost cause: %v", err)
	}

	if !strings.Contains(err.Error(), "stats retrieval failed") {
		t.Errorf("error = %q, want retrieval context", err)
	}
}

func TestGetStats_HistoryAttached(t *testing.T) {
	t.Parallel()

	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
			return sampleDocs(t), nil
		},
	}
	ingestion := &mockIngestionStore{
		getFn: func(_ context.Context) (map[string]any, error) {
			return map[string]any{"total_ingested": float64(7)}, nil
		},
	}

	svc := service.NewStatsService(docs, ingestion, testLogger())

	report, err := svc.GetStats(context.Background(), models.StatsRequest{})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if report.IngestionHistory == nil {
		t.Fatal("ingestion history missing")
	}

	if report.IngestionHistory["total_ingested"] != float64(7) {
		t.Errorf("total_ingested = %v, want 7", report.IngestionHistory["total_ingested"])
	}
}

func TestGetStats_HistoryFailureOmitted(t *testing.T) {
	t.Parallel()

	cases := map[string]error{
		"not recorded yet": models.ErrIngestionHistoryNotFound,
		"lookup error":     errors.New("jsonb decode failed"),
	}

	for name, historyErr := range cases {
		historyErr := historyErr
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			docs := &mockDocumentLister{
				listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
					return sampleDocs(t), nil
				},
			}
			ingestion := &mockIngestionStore{
				getFn: func(_ context.Context) (map[string]any, error) {
					return nil, historyErr
				},
			}

			svc := service.NewStatsService(docs, ingestion, testLogger())

			report, err := svc.GetStats(context.Background(), models.StatsRequest{})
			if err != nil {
				t.Fatalf("history failure must not fail the request: %v", err)
			}

			if report.IngestionHistory != nil {
				t.Error("ingestion history attached despite lookup failure")
			}

			if report.TotalItems != 2 {
				t.Errorf("total_items = %d, want 2", report.TotalItems)
			}
		})
	}
}

func TestGetStats_DateFilterForwarded(t *testing.T) {
	t.Parallel()

	start := ts(t, "2024-02-01T00:00:00Z")

	var seen models.DateFilter

	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, filter models.DateFilter) ([]models.KnowledgeDocument, error) {
			seen = filter

			return nil, nil
		},
	}

	svc := service.NewStatsService(docs, &mockIngestionStore{}, testLogger())

	if _, err := svc.GetStats(context.Background(), models.StatsRequest{DateRange: models.DateFilter{Start: start}}); err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if seen.Start == nil || !seen.Start.Equal(*start) {
		t.Errorf("start filter = %v, want %v", seen.Start, start)
	}
}

func TestGetStats_CoalescesConcurrentRequests(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls int
	)

	started := make(chan struct{})
	release := make(chan struct{})

	docs := &mockDocumentLister{
		listAllFn: func(_ context.Context, _ models.DateFilter) ([]models.KnowledgeDocument, error) {
			mu.Lock()
			calls++
			if calls == 1 {
				close(started)
			}
			mu.Unlock()

			<-release

			return sampleDocs(t), nil
		},
	}

	svc := service.NewStatsService(docs, &mockIngestionStore{}, testLogger())

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		if _, err := svc.GetStats(context.Background(), models.StatsRequest{}); err != nil {
			t.Errorf("GetStats: %v", err)
		}
	}()

	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()

		if _, err := svc.GetStats(context.Background(), models.StatsRequest{}); err != nil {
			t.Errorf("GetStats: %v", err)
		}
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()

	if calls != 1 {
		t.Errorf("store queried %d times for identical concurrent requests, want 1", calls)
	}
}
