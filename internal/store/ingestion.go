package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/knowbaseai/knowbase/internal/models"
)

// ingestionHistoryKey is the fixed identifier of the system-level ingestion
// history document.
const ingestionHistoryKey = "ingestion_history"

// IngestionStore handles the system-level ingestion metadata document.
type IngestionStore struct {
	Base
}

// NewIngestionStore creates a new IngestionStore.
func NewIngestionStore(base Base) *IngestionStore {
	return &IngestionStore{Base: base}
}

// GetIngestionHistory returns the stored ingestion history payload.
// Absence of the document is reported as models.ErrIngestionHistoryNotFound;
// callers attaching it to a stats report treat that as "omit", not as failure.
func (s *IngestionStore) GetIngestionHistory(ctx context.Context) (map[string]any, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var payload []byte

	err := s.Pool.QueryRow(ctx,
		"SELECT payload FROM ingestion_metadata WHERE id = $1", ingestionHistoryKey,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrIngestionHistoryNotFound
		}

		return nil, fmt.Errorf("fetching ingestion history: %w", err)
	}

	history := make(map[string]any)
	if err := json.Unmarshal(payload, &history); err != nil {
		return nil, fmt.Errorf("decoding ingestion history: %w", err)
	}

	return history, nil
}

// RecordIngestion bumps the ingestion history counters after a successful
// document write: total_ingested grows by count and last_ingested_at moves
// to now. The row is created on first use.
func (s *IngestionStore) RecordIngestion(ctx context.Context, count int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.Pool.Exec(ctx,
		`INSERT INTO ingestion_metadata (id, payload, updated_at)
		 VALUES ($1, jsonb_build_object('total_ingested', $2::int, 'last_ingested_at', now()), now())
		 ON CONFLICT (id) DO UPDATE SET
			payload = ingestion_metadata.payload || jsonb_build_object(
				'total_ingested',
				COALESCE((ingestion_metadata.payload->>'total_ingested')::int, 0) + $2::int,
				'last_ingested_at', now()),
			updated_at = now()`,
		ingestionHistoryKey, count,
	)
	if err != nil {
		return fmt.Errorf("recording ingestion: %w", err)
	}

	return nil
}
