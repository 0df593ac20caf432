package client

import (
	"encoding/json"
	"time"
)

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Document is a knowledge document as returned by the API.
type Document struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Source             string          `json:"source,omitempty"`
	ContentType        string          `json:"content_type,omitempty"`
	Content            string          `json:"content,omitempty"`
	QualityScore       float64         `json:"quality_score"`
	Tags               []string        `json:"tags,omitempty"`
	CreatedAt          *time.Time      `json:"created_at,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at"`
	EnhancedAt         *time.Time      `json:"enhanced_at,omitempty"`
	AICategories       json.RawMessage `json:"ai_categories,omitempty"`
	ExtractedExercises json.RawMessage `json:"extracted_exercises,omitempty"`
	AISummary          *string         `json:"ai_summary,omitempty"`
}

// CreateDocumentRequest is the payload for creating or upserting a document.
type CreateDocumentRequest struct {
	ID                 string          `json:"id,omitempty"`
	Title              string          `json:"title"`
	Source             string          `json:"source,omitempty"`
	ContentType        string          `json:"content_type,omitempty"`
	Content            string          `json:"content,omitempty"`
	QualityScore       float64         `json:"quality_score"`
	Tags               []string        `json:"tags,omitempty"`
	EnhancedAt         *time.Time      `json:"enhanced_at,omitempty"`
	AICategories       json.RawMessage `json:"ai_categories,omitempty"`
	ExtractedExercises json.RawMessage `json:"extracted_exercises,omitempty"`
	AISummary          *string         `json:"ai_summary,omitempty"`
}

// DocumentListOptions controls document list filtering and pagination.
type DocumentListOptions struct {
	Source      string
	ContentType string
	Limit       int
	Offset      int
}

// StatsReport is the statistics payload. When the scan matches no documents
// only TotalItems and Message are populated.
type StatsReport struct {
	TotalItems          int                 `json:"total_items"`
	Message             string              `json:"message,omitempty"`
	BySource            map[string]int      `json:"by_source,omitempty"`
	ByContentType       map[string]int      `json:"by_content_type,omitempty"`
	ByQualityRange      *QualityBuckets     `json:"by_quality_range,omitempty"`
	AverageQualityScore *float64            `json:"average_quality_score,omitempty"`
	TagFrequency        map[string]int      `json:"tag_frequency,omitempty"`
	ProcessingStatus    *ProcessingStatus   `json:"processing_status,omitempty"`
	DateRange           *DateRange          `json:"date_range,omitempty"`
	ContentLengthStats  *ContentLengthStats `json:"content_length_stats,omitempty"`
	DetailedBreakdown   *DetailedBreakdown  `json:"detailed_breakdown,omitempty"`
	IngestionHistory    map[string]any      `json:"ingestion_history,omitempty"`
}

// QualityBuckets is the three-tier quality histogram.
type QualityBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ProcessingStatus counts documents per completed pipeline stage.
type ProcessingStatus struct {
	Enhanced           int `json:"enhanced"`
	Categorized        int `json:"categorized"`
	ExercisesExtracted int `json:"exercises_extracted"`
	Summarized         int `json:"summarized"`
}

// DateRange is the span of creation timestamps as ISO-8601 strings.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// ContentLengthStats summarizes content character counts.
type ContentLengthStats struct {
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// DetailedBreakdown is the optional second report tier.
type DetailedBreakdown struct {
	SourceQualityCorrelation map[string]SourceQuality  `json:"source_quality_correlation"`
	ContentTypeBySource      map[string]map[string]int `json:"content_type_by_source"`
	MonthlyIngestion         map[string]int            `json:"monthly_ingestion"`
	TopQualityItems          []TopQualityItem          `json:"top_quality_items"`
	EnhancementCoverage      EnhancementCoverage       `json:"enhancement_coverage"`
}

// SourceQuality pairs a per-source document count with its average quality.
type SourceQuality struct {
	Count      int     `json:"count"`
	AvgQuality float64 `json:"avg_quality"`
}

// TopQualityItem is the reduced projection carried by the top-quality shortlist.
type TopQualityItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Source       string   `json:"source"`
	ContentType  string   `json:"content_type"`
	QualityScore float64  `json:"quality_score"`
	Tags         []string `json:"tags,omitempty"`
}

// EnhancementCoverage reports pipeline-stage coverage as percentages.
type EnhancementCoverage struct {
	TotalItems                   int     `json:"total_items"`
	EnhancedPercentage           float64 `json:"enhanced_percentage"`
	CategorizedPercentage        float64 `json:"categorized_percentage"`
	ExercisesExtractedPercentage float64 `json:"exercises_extracted_percentage"`
}
