// Package stats computes the knowledge base statistics report.
//
// Aggregation is a pure fold over an already-materialized document slice:
// Aggregate makes one pass for the base summary, Breakdown makes a second
// pass for the optional detail tier. Neither touches the store or mutates
// its input, so both are safe to call concurrently.
package stats

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/knowbaseai/knowbase/internal/models"
)

// Quality tier thresholds, evaluated high-first so a score of exactly 0.8
// lands in "high" and exactly 0.6 in "medium".
const (
	highQualityThreshold   = 0.8
	mediumQualityThreshold = 0.6
)

// maxTopTags caps the tag_frequency mapping to the highest-count tags.
const maxTopTags = 20

// Aggregate consumes the matched document set exactly once and produces the
// base summary report. An empty set yields the minimal short-circuit payload
// so no derived average ever divides by zero.
func Aggregate(docs []models.KnowledgeDocument) *models.StatsReport {
	if len(docs) == 0 {
		return models.EmptyStatsReport()
	}

	report := &models.StatsReport{
		TotalItems:       len(docs),
		BySource:         make(map[string]int),
		ByContentType:    make(map[string]int),
		ByQualityRange:   &models.QualityBuckets{},
		ProcessingStatus: &models.ProcessingStatus{},
	}

	var (
		qualitySum float64
		tagCounts  = make(map[string]int)
		lengthSum  int
		minLength  = math.MaxInt // sentinel, corrected to 0 post-loop
		maxLength  int
		timestamps []time.Time
	)

	for i := range docs {
		doc := &docs[i]

		report.BySource[doc.SourceLabel()]++
		report.ByContentType[doc.ContentTypeLabel()]++

		qualitySum += doc.QualityScore

		switch {
		case doc.QualityScore >= highQualityThreshold:
			report.ByQualityRange.High++
		case doc.QualityScore >= mediumQualityThreshold:
			report.ByQualityRange.Medium++
		default:
			report.ByQualityRange.Low++
		}

		for _, tag := range doc.Tags {
			tagCounts[tag]++
		}

		if doc.Enhanced() {
			report.ProcessingStatus.Enhanced++
		}

		if doc.Categorized() {
			report.ProcessingStatus.Categorized++
		}

		if doc.ExercisesExtracted() {
			report.ProcessingStatus.ExercisesExtracted++
		}

		if doc.Summarized() {
			report.ProcessingStatus.Summarized++
		}

		length := utf8.RuneCountInString(doc.Content)
		lengthSum += length

		if length < minLength {
			minLength = length
		}

		if length > maxLength {
			maxLength = length
		}

		if doc.CreatedAt != nil {
			timestamps = append(timestamps, *doc.CreatedAt)
		}
	}

	total := float64(report.TotalItems)

	avgQuality := qualitySum / total
	report.AverageQualityScore = &avgQuality

	if minLength == math.MaxInt {
		minLength = 0
	}

	report.ContentLengthStats = &models.ContentLengthStats{
		Average: float64(lengthSum) / total,
		Min:     minLength,
		Max:     maxLength,
	}

	report.TagFrequency = TopTags(tagCounts, maxTopTags)
	report.DateRange = dateRange(timestamps)

	return report
}

// dateRange sorts the collected timestamps and formats the span as ISO-8601.
// Both sides are null when no document carried a usable timestamp.
func dateRange(timestamps []time.Time) *models.DateRange {
	dr := &models.DateRange{}

	if len(timestamps) == 0 {
		return dr
	}

	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	earliest := timestamps[0].UTC().Format(time.RFC3339)
	latest := timestamps[len(timestamps)-1].UTC().Format(time.RFC3339)
	dr.Earliest = &earliest
	dr.Latest = &latest

	return dr
}
