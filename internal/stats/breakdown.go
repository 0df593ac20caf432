package stats

import (
	"fmt"
	"sort"

	"github.com/knowbaseai/knowbase/internal/models"
)

// maxTopQualityItems caps the top-quality shortlist.
const maxTopQualityItems = 10

// Breakdown re-scans the matched document set and computes the optional
// detail tier: per-source quality correlation, nested content-type counts,
// monthly ingestion counts, the top-quality shortlist, and enhancement
// coverage. Averages and percentages are derived only after the full scan;
// the coverage computation carries its own zero-denominator guard so the
// function is safe on any input, not just the short-circuited flow.
func Breakdown(docs []models.KnowledgeDocument) *models.DetailedBreakdown {
	bd := &models.DetailedBreakdown{
		SourceQualityCorrelation: make(map[string]models.SourceQuality),
		ContentTypeBySource:      make(map[string]map[string]int),
		MonthlyIngestion:         make(map[string]int),
		TopQualityItems:          []models.TopQualityItem{},
	}

	sourceQualitySums := make(map[string]float64)

	var enhanced, categorized, exercisesExtracted int

	for i := range docs {
		doc := &docs[i]
		source := doc.SourceLabel()

		sq := bd.SourceQualityCorrelation[source]
		sq.Count++
		bd.SourceQualityCorrelation[source] = sq
		sourceQualitySums[source] += doc.QualityScore

		byType := bd.ContentTypeBySource[source]
		if byType == nil {
			byType = make(map[string]int)
			bd.ContentTypeBySource[source] = byType
		}
		byType[doc.ContentTypeLabel()]++

		if doc.CreatedAt != nil {
			t := doc.CreatedAt.UTC()
			bd.MonthlyIngestion[fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))]++
		}

		if doc.QualityScore >= highQualityThreshold {
			bd.TopQualityItems = append(bd.TopQualityItems, models.TopQualityItem{
				ID:           doc.ID,
				Title:        doc.Title,
				Source:       source,
				ContentType:  doc.ContentTypeLabel(),
				QualityScore: doc.QualityScore,
				Tags:         doc.Tags,
			})
		}

		if doc.Enhanced() {
			enhanced++
		}

		if doc.Categorized() {
			categorized++
		}

		if doc.ExercisesExtracted() {
			exercisesExtracted++
		}
	}

	// Normalize per-source averages only after counts stopped growing.
	for source, sq := range bd.SourceQualityCorrelation {
		sq.AvgQuality = sourceQualitySums[source] / float64(sq.Count)
		bd.SourceQualityCorrelation[source] = sq
	}

	sort.Slice(bd.TopQualityItems, func(i, j int) bool {
		a, b := bd.TopQualityItems[i], bd.TopQualityItems[j]
		if a.QualityScore != b.QualityScore {
			return a.QualityScore > b.QualityScore
		}

		return a.ID < b.ID
	})

	if len(bd.TopQualityItems) > maxTopQualityItems {
		bd.TopQualityItems = bd.TopQualityItems[:maxTopQualityItems]
	}

	bd.EnhancementCoverage = coverage(len(docs), enhanced, categorized, exercisesExtracted)

	return bd
}

// coverage computes pipeline-stage percentages, guarding the zero-item case.
func coverage(total, enhanced, categorized, exercisesExtracted int) models.EnhancementCoverage {
	cov := models.EnhancementCoverage{TotalItems: total}

	if total == 0 {
		return cov
	}

	cov.EnhancedPercentage = float64(enhanced) / float64(total) * 100
	cov.CategorizedPercentage = float64(categorized) / float64(total) * 100
	cov.ExercisesExtractedPercentage = float64(exercisesExtracted) / float64(total) * 100

	return cov
}
