package client

import "context"

// IngestionService handles ingestion bookkeeping lookups.
type IngestionService struct {
	c *Client
}

// History returns the recorded ingestion metadata.
func (s *IngestionService) History(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := s.c.get(ctx, "/api/v1/ingestion/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
