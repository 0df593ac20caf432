// Package models defines data types for the knowledge base.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UnknownLabel is substituted for absent source and content-type fields so
// every document lands in exactly one histogram bucket. Centralized here so
// the aggregation invariants stay auditable in one place.
const UnknownLabel = "unknown"

// KnowledgeDocument is one ingested content record, the unit over which all
// statistics are computed. The four enrichment fields (EnhancedAt,
// AICategories, ExtractedExercises, AISummary) are inspected for presence
// only — the aggregator never reads their values.
type KnowledgeDocument struct {
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

// SourceLabel returns the document source, defaulting to UnknownLabel.
func (d *KnowledgeDocument) SourceLabel() string {
	if d.Source == "" {
		return UnknownLabel
	}

	return d.Source
}

// ContentTypeLabel returns the document content type, defaulting to UnknownLabel.
func (d *KnowledgeDocument) ContentTypeLabel() string {
	if d.ContentType == "" {
		return UnknownLabel
	}

	return d.ContentType
}

// Enhanced reports whether the enhancement pipeline stage ran on this document.
func (d *KnowledgeDocument) Enhanced() bool { return d.EnhancedAt != nil }

// Categorized reports whether AI categorization ran on this document.
func (d *KnowledgeDocument) Categorized() bool { return len(d.AICategories) > 0 }

// ExercisesExtracted reports whether exercise extraction ran on this document.
func (d *KnowledgeDocument) ExercisesExtracted() bool { return len(d.ExtractedExercises) > 0 }

// Summarized reports whether AI summarization ran on this document.
func (d *KnowledgeDocument) Summarized() bool { return d.AISummary != nil }

// CreateDocumentRequest is the payload for ingesting a new document.
type CreateDocumentRequest struct {
	ID                 string          `json:"id"`
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

// Validate checks that required fields are present and within limits.
// If ID is empty, a UUID is auto-generated.
func (r *CreateDocumentRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if len(r.ID) > 255 {
		return ErrFieldTooLong("id", 255)
	}

	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > 1000 {
		return ErrFieldTooLong("title", 1000)
	}

	if len(r.Source) > 255 {
		return ErrFieldTooLong("source", 255)
	}

	if len(r.ContentType) > 100 {
		return ErrFieldTooLong("content_type", 100)
	}

	if r.QualityScore < 0 || r.QualityScore > 1 {
		return fmt.Errorf("quality_score must be in [0, 1], got %g", r.QualityScore)
	}

	if len(r.Tags) > 100 {
		return ErrFieldTooLong("tags", 100)
	}

	for _, tag := range r.Tags {
		if tag == "" {
			return fmt.Errorf("tags must not contain empty strings")
		}

		if len(tag) > 100 {
			return ErrFieldTooLong("tag", 100)
		}
	}

	return nil
}
