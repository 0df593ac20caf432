package models

import "time"

// NoItemsMessage is returned when no documents match the stats filter.
const NoItemsMessage = "No knowledge items found"

// StatsRequest carries the caller-facing stats parameters.
type StatsRequest struct {
	IncludeDetails bool
	DateRange      DateFilter
}

// DateFilter is an optional inclusive created_at bound. A nil side is
// unbounded; when both sides are set, both apply.
type DateFilter struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether no bound is set.
func (f DateFilter) IsZero() bool {
	return f.Start == nil && f.End == nil
}

// StatsReport is the multi-dimensional summary produced per request. The
// empty-set short circuit populates only TotalItems and Message; every other
// field is omitted from the JSON payload in that case, so callers must check
// TotalItems before assuming field presence.
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

// EmptyStatsReport returns the fixed short-circuit payload for a result set
// with no matching documents.
func EmptyStatsReport() *StatsReport {
	return &StatsReport{TotalItems: 0, Message: NoItemsMessage}
}

// QualityBuckets is the fixed three-tier quality histogram. A document lands
// in exactly one bucket: high for score >= 0.8, medium for score >= 0.6,
// low otherwise.
type QualityBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ProcessingStatus counts documents per completed pipeline stage. The four
// counters are independent; one document may appear in all of them.
type ProcessingStatus struct {
	Enhanced           int `json:"enhanced"`
	Categorized        int `json:"categorized"`
	ExercisesExtracted int `json:"exercises_extracted"`
	Summarized         int `json:"summarized"`
}

// DateRange is the span of usable creation timestamps, as ISO-8601 strings.
// Both sides are null when no document carried a timestamp.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// ContentLengthStats summarizes content character counts. Min is 0, never a
// sentinel, when no document has content.
type ContentLengthStats struct {
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// DetailedBreakdown is the optional second report tier, computed only on
// explicit request.
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

// EnhancementCoverage reports pipeline-stage coverage as percentages of the
// matched set.
type EnhancementCoverage struct {
	TotalItems                   int     `json:"total_items"`
	EnhancedPercentage           float64 `json:"enhanced_percentage"`
	CategorizedPercentage        float64 `json:"categorized_percentage"`
	ExercisesExtractedPercentage float64 `json:"exercises_extracted_percentage"`
}
