// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/knowbaseai/knowbase/internal/metrics"
	"github.com/knowbaseai/knowbase/internal/models"
	"github.com/knowbaseai/knowbase/internal/stats"
)

// DocumentLister is the accessor the stats flow reads documents through.
type DocumentLister interface {
	ListAll(ctx context.Context, filter models.DateFilter) ([]models.KnowledgeDocument, error)
}

// IngestionHistoryReader looks up the system-level ingestion history document.
type IngestionHistoryReader interface {
	GetIngestionHistory(ctx context.Context) (map[string]any, error)
}

// StatsService assembles the knowledge base statistics report.
type StatsService struct {
	docs      DocumentLister
	ingestion IngestionHistoryReader
	log       *logrus.Logger
	group     singleflight.Group
}

// NewStatsService creates a StatsService.
func NewStatsService(docs DocumentLister, ingestion IngestionHistoryReader, log *logrus.Logger) *StatsService {
	return &StatsService{docs: docs, ingestion: ingestion, log: log}
}

// GetStats returns the statistics report for the given request. Concurrent
// requests with identical parameters are coalesced into one document scan;
// the losing callers receive the winner's report.
func (s *StatsService) GetStats(ctx context.Context, req models.StatsRequest) (*models.StatsReport, error) {
	v, err, _ := s.group.Do(requestKey(req), func() (any, error) {
		return s.buildReport(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.StatsReport), nil
}

// buildReport runs the full aggregation flow: fetch, short-circuit on empty,
// fold, optional breakdown, best-effort history attachment.
func (s *StatsService) buildReport(ctx context.Context, req models.StatsRequest) (*models.StatsReport, error) {
	docs, err := s.docs.ListAll(ctx, req.DateRange)
	if err != nil {
		return nil, fmt.Errorf("stats retrieval failed: %w", err)
	}

	// Short-circuit before any derived value divides by the item count.
	if len(docs) == 0 {
		return models.EmptyStatsReport(), nil
	}

	start := time.Now()

	report := stats.Aggregate(docs)
	if req.IncludeDetails {
		report.DetailedBreakdown = stats.Breakdown(docs)
	}

	metrics.StatsRequestDuration.Observe(time.Since(start).Seconds())

	// The gauge tracks the whole collection, so only refresh it from
	// unfiltered scans.
	if req.DateRange.IsZero() {
		metrics.DocumentCount.Set(float64(report.TotalItems))
	}

	// Ingestion history is decorative metadata: absence is silence, failure
	// is a warning, neither fails the request.
	history, err := s.ingestion.GetIngestionHistory(ctx)
	switch {
	case err == nil:
		report.IngestionHistory = history
	case errors.Is(err, models.ErrIngestionHistoryNotFound):
	default:
		s.log.WithError(err).Warn("fetching ingestion history")
	}

	return report, nil
}

// requestKey derives the singleflight key from the request parameters.
func requestKey(req models.StatsRequest) string {
	formatBound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}

		return t.UTC().Format(time.RFC3339Nano)
	}

	return fmt.Sprintf("details=%t|start=%s|end=%s",
		req.IncludeDetails, formatBound(req.DateRange.Start), formatBound(req.DateRange.End))
}
