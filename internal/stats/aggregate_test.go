package stats_test

import (
	"math"
	"testing"
	"time"

	"github.com/knowbaseai/knowbase/internal/models"
	"github.com/knowbaseai/knowbase/internal/stats"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}

	return &t
}

// sampleDocs is the three-document scenario used across aggregation tests.
func sampleDocs() []models.KnowledgeDocument {
	return []models.KnowledgeDocument{
		{
			ID: "d1", Title: "Article one", Source: "web", ContentType: "article",
			QualityScore: 0.9, Tags: []string{"a", "b"},
			CreatedAt: ts("2024-01-10T00:00:00Z"), Content: "hello",
		},
		{
			ID: "d2", Title: "PDF two", Source: "web", ContentType: "pdf",
			QualityScore: 0.5, Tags: []string{"b"},
			CreatedAt: ts("2024-03-01T00:00:00Z"), Content: "",
		},
		{
			ID: "d3", Title: "Article three", Source: "api", ContentType: "article",
			QualityScore: 0.8, Tags: []string{"a"},
			CreatedAt: ts("2024-02-15T00:00:00Z"), Content: "hi there",
		},
	}
}

func TestAggregate_Counts(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(sampleDocs())

	if report.TotalItems != 3 {
		t.Fatalf("expected total_items 3, got %d", report.TotalItems)
	}

	if report.BySource["web"] != 2 || report.BySource["api"] != 1 {
		t.Errorf("unexpected by_source: %v", report.BySource)
	}

	if report.ByContentType["article"] != 2 || report.ByContentType["pdf"] != 1 {
		t.Errorf("unexpected by_content_type: %v", report.ByContentType)
	}

	// Histogram totals must match total_items.
	sourceSum := 0
	for _, n := range report.BySource {
		sourceSum += n
	}

	if sourceSum != report.TotalItems {
		t.Errorf("by_source sums to %d, want %d", sourceSum, report.TotalItems)
	}
}

func TestAggregate_QualityBuckets(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(sampleDocs())
	qb := report.ByQualityRange

	// 0.9 and exactly 0.8 are high; 0.5 is low.
	if qb.High != 2 || qb.Medium != 0 || qb.Low != 1 {
		t.Fatalf("unexpected buckets: %+v", qb)
	}

	if qb.High+qb.Medium+qb.Low != report.TotalItems {
		t.Errorf("buckets sum to %d, want %d", qb.High+qb.Medium+qb.Low, report.TotalItems)
	}
}

func TestAggregate_BucketBoundaries(t *testing.T) {
	t.Parallel()

	docs := []models.KnowledgeDocument{
		{ID: "h", Title: "h", QualityScore: 0.8},
		{ID: "m", Title: "m", QualityScore: 0.6},
		{ID: "l", Title: "l", QualityScore: 0.5999},
	}

	qb := stats.Aggregate(docs).ByQualityRange

	if qb.High != 1 {
		t.Errorf("score exactly 0.8 must be high, got %+v", qb)
	}

	if qb.Medium != 1 {
		t.Errorf("score exactly 0.6 must be medium, got %+v", qb)
	}

	if qb.Low != 1 {
		t.Errorf("score 0.5999 must be low, got %+v", qb)
	}
}

func TestAggregate_AverageQuality(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(sampleDocs())

	if report.AverageQualityScore == nil {
		t.Fatal("average_quality_score missing")
	}

	want := (0.9 + 0.5 + 0.8) / 3
	if math.Abs(*report.AverageQualityScore-want) > 1e-9 {
		t.Errorf("average_quality_score = %g, want %g", *report.AverageQualityScore, want)
	}
}

func TestAggregate_TagFrequency(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(sampleDocs())

	if report.TagFrequency["a"] != 2 || report.TagFrequency["b"] != 2 {
		t.Errorf("unexpected tag_frequency: %v", report.TagFrequency)
	}
}

func TestAggregate_ProcessingStatus(t *testing.T) {
	t.Parallel()

	summary := "done"
	docs := []models.KnowledgeDocument{
		{ID: "d1", Title: "t", EnhancedAt: ts("2024-01-01T00:00:00Z"), AICategories: []byte(`["strength"]`)},
		{ID: "d2", Title: "t", ExtractedExercises: []byte(`[{"name":"squat"}]`), AISummary: &summary},
		{ID: "d3", Title: "t"},
	}

	ps := stats.Aggregate(docs).ProcessingStatus

	if ps.Enhanced != 1 || ps.Categorized != 1 || ps.ExercisesExtracted != 1 || ps.Summarized != 1 {
		t.Errorf("unexpected processing_status: %+v", ps)
	}
}

func TestAggregate_DateRange(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(sampleDocs())
	dr := report.DateRange

	if dr.Earliest == nil || dr.Latest == nil {
		t.Fatal("date_range sides must be set")
	}

	if *dr.Earliest != "2024-01-10T00:00:00Z" {
		t.Errorf("earliest = %q", *dr.Earliest)
	}

	if *dr.Latest != "2024-03-01T00:00:00Z" {
		t.Errorf("latest = %q", *dr.Latest)
	}

	if *dr.Earliest > *dr.Latest {
		t.Errorf("earliest %q after latest %q", *dr.Earliest, *dr.Latest)
	}
}

func TestAggregate_DateRangeNoTimestamps(t *testing.T) {
	t.Parallel()

	docs := []models.KnowledgeDocument{{ID: "d1", Title: "t"}}
	dr := stats.Aggregate(docs).DateRange

	if dr.Earliest != nil || dr.Latest != nil {
		t.Errorf("expected null date range, got %+v", dr)
	}
}

func TestAggregate_ContentLength(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(sampleDocs())
	cls := report.ContentLengthStats

	if cls.Min != 0 {
		t.Errorf("min = %d, want 0 (d2 has empty content)", cls.Min)
	}

	if cls.Max != 8 {
		t.Errorf("max = %d, want 8", cls.Max)
	}

	want := float64(5+0+8) / 3
	if math.Abs(cls.Average-want) > 1e-9 {
		t.Errorf("average = %g, want %g", cls.Average, want)
	}
}

func TestAggregate_ContentLengthAllEmpty(t *testing.T) {
	t.Parallel()

	docs := []models.KnowledgeDocument{
		{ID: "d1", Title: "t"},
		{ID: "d2", Title: "t"},
	}

	cls := stats.Aggregate(docs).ContentLengthStats

	if cls.Min != 0 || cls.Max != 0 || cls.Average != 0 {
		t.Errorf("expected zeroed content stats, got %+v", cls)
	}
}

func TestAggregate_UnknownDefaults(t *testing.T) {
	t.Parallel()

	docs := []models.KnowledgeDocument{{ID: "d1", Title: "t"}}
	report := stats.Aggregate(docs)

	if report.BySource["unknown"] != 1 {
		t.Errorf("missing source must count as unknown: %v", report.BySource)
	}

	if report.ByContentType["unknown"] != 1 {
		t.Errorf("missing content_type must count as unknown: %v", report.ByContentType)
	}
}

func TestAggregate_EmptySet(t *testing.T) {
	t.Parallel()

	report := stats.Aggregate(nil)

	if report.TotalItems != 0 {
		t.Fatalf("total_items = %d, want 0", report.TotalItems)
	}

	if report.Message != models.NoItemsMessage {
		t.Errorf("message = %q", report.Message)
	}

	if report.BySource != nil || report.ByQualityRange != nil || report.AverageQualityScore != nil ||
		report.DateRange != nil || report.ContentLengthStats != nil || report.ProcessingStatus != nil {
		t.Errorf("empty report must carry no aggregate fields: %+v", report)
	}
}
