package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/knowbaseai/knowbase/internal/models"
)

// DocumentStore handles knowledge document persistence.
type DocumentStore struct {
	Base
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(base Base) *DocumentStore {
	return &DocumentStore{Base: base}
}

const documentColumns = `id, title, source, content_type, content, quality_score, tags,
	created_at, updated_at, enhanced_at, ai_categories, extracted_exercises, ai_summary`

// scanDocument reads one document row via the given scan function.
func scanDocument(scan func(dest ...any) error) (*models.KnowledgeDocument, error) {
	var (
		doc         models.KnowledgeDocument
		source      *string
		contentType *string
		content     *string
	)

	err := scan(
		&doc.ID, &doc.Title, &source, &contentType, &content, &doc.QualityScore, &doc.Tags,
		&doc.CreatedAt, &doc.UpdatedAt, &doc.EnhancedAt,
		&doc.AICategories, &doc.ExtractedExercises, &doc.AISummary,
	)
	if err != nil {
		return nil, err
	}

	if source != nil {
		doc.Source = *source
	}

	if contentType != nil {
		doc.ContentType = *contentType
	}

	if content != nil {
		doc.Content = *content
	}

	return &doc, nil
}

// nullable maps the empty string to SQL NULL so absent labels round-trip
// as absent instead of as empty strings.
func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// ListAll returns every document whose created_at falls within the inclusive
// filter bounds, or the unfiltered full set when no bound is given. This is
// the aggregator's accessor: the result is materialized in memory for the
// statistics fold.
func (s *DocumentStore) ListAll(ctx context.Context, filter models.DateFilter) ([]models.KnowledgeDocument, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT " + documentColumns + " FROM knowledge_documents"
	args := make([]any, 0, 2)
	argIdx := 1

	if filter.Start != nil {
		query += fmt.Sprintf(" WHERE created_at >= $%d", argIdx)
		args = append(args, *filter.Start)
		argIdx++
	}

	if filter.End != nil {
		if argIdx == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}

		query += fmt.Sprintf(" created_at <= $%d", argIdx)
		args = append(args, *filter.End)
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []models.KnowledgeDocument

	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}

		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}

	return docs, nil
}

// ListDocuments returns a page of documents with optional source and
// content-type filters, newest first.
func (s *DocumentStore) ListDocuments(
	ctx context.Context,
	source, contentType string,
	limit, offset int,
) ([]models.KnowledgeDocument, bool, error) {
	if limit <= 0 {
		limit = 50
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := ""
	filterArgs := make([]any, 0, 2)
	argIdx := 1

	if source != "" {
		where += fmt.Sprintf(" WHERE source = $%d", argIdx)
		filterArgs = append(filterArgs, source)
		argIdx++
	}

	if contentType != "" {
		if where == "" {
			where = " WHERE"
		} else {
			where += " AND"
		}

		where += fmt.Sprintf(" content_type = $%d", argIdx)
		filterArgs = append(filterArgs, contentType)
		argIdx++
	}

	query := "SELECT " + documentColumns + " FROM knowledge_documents" + where
	query += " ORDER BY created_at DESC NULLS LAST, id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args := make([]any, 0, len(filterArgs)+2)
	args = append(args, filterArgs...)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.KnowledgeDocument, 0, limit+1)

	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, false, fmt.Errorf("scanning document row: %w", err)
		}

		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating document rows: %w", err)
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}

	return docs, hasMore, nil
}

// GetDocument returns a single document by ID.
func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*models.KnowledgeDocument, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		"SELECT "+documentColumns+" FROM knowledge_documents WHERE id = $1", id)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDocumentNotFound
		}

		return nil, fmt.Errorf("fetching document: %w", err)
	}

	return doc, nil
}

// CreateDocument inserts a new document and returns the stored row.
func (s *DocumentStore) CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.KnowledgeDocument, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	row := s.Pool.QueryRow(ctx,
		`INSERT INTO knowledge_documents
			(id, title, source, content_type, content, quality_score, tags,
			 created_at, updated_at, enhanced_at, ai_categories, extracted_exercises, ai_summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now(), $8, $9, $10, $11)
		 RETURNING `+documentColumns,
		req.ID, req.Title, nullable(req.Source), nullable(req.ContentType), nullable(req.Content),
		req.QualityScore, tags, req.EnhancedAt, req.AICategories, req.ExtractedExercises, req.AISummary,
	)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting document: %w", err)
	}

	return doc, nil
}

// DeleteDocument removes a document by ID.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, "DELETE FROM knowledge_documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrDocumentNotFound
	}

	return nil
}

// BulkUpsertDocuments inserts or replaces documents in one batch round-trip
// and returns the number of rows written.
func (s *DocumentStore) BulkUpsertDocuments(ctx context.Context, reqs []models.CreateDocumentRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	batch := &pgx.Batch{}

	for i := range reqs {
		req := &reqs[i]

		tags := req.Tags
		if tags == nil {
			tags = []string{}
		}

		batch.Queue(
			`INSERT INTO knowledge_documents
				(id, title, source, content_type, content, quality_score, tags,
				 created_at, updated_at, enhanced_at, ai_categories, extracted_exercises, ai_summary)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now(), $8, $9, $10, $11)
			 ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				source = EXCLUDED.source,
				content_type = EXCLUDED.content_type,
				content = EXCLUDED.content,
				quality_score = EXCLUDED.quality_score,
				tags = EXCLUDED.tags,
				updated_at = now(),
				enhanced_at = EXCLUDED.enhanced_at,
				ai_categories = EXCLUDED.ai_categories,
				extracted_exercises = EXCLUDED.extracted_exercises,
				ai_summary = EXCLUDED.ai_summary`,
			req.ID, req.Title, nullable(req.Source), nullable(req.ContentType), nullable(req.Content),
			req.QualityScore, tags, req.EnhancedAt, req.AICategories, req.ExtractedExercises, req.AISummary,
		)
	}

	results := s.Pool.SendBatch(ctx, batch)
	defer results.Close() //nolint:errcheck // errors surface via Exec below.

	written := 0

	for range reqs {
		if _, err := results.Exec(); err != nil {
			return written, fmt.Errorf("bulk upserting documents: %w", err)
		}

		written++
	}

	return written, nil
}

// CountDocuments returns the total number of stored documents.
func (s *DocumentStore) CountDocuments(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM knowledge_documents").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}

	return count, nil
}
