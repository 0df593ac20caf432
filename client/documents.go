package client

import (
	"context"
	"net/url"
	"strconv"
)

// DocumentService handles knowledge document operations.
type DocumentService struct {
	c *Client
}

// documentListResponse wraps the paginated document list response.
type documentListResponse struct {
	Documents []Document `json:"documents"`
	HasMore   bool       `json:"has_more"`
}

// List returns documents with optional filtering and pagination.
func (s *DocumentService) List(ctx context.Context, opts *DocumentListOptions) ([]Document, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Source != "" {
			params.Set("source", opts.Source)
		}
		if opts.ContentType != "" {
			params.Set("content_type", opts.ContentType)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp documentListResponse
	if err := s.c.get(ctx, "/api/v1/documents", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Documents, resp.HasMore, nil
}

// Get returns a single document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	if err := s.c.get(ctx, "/api/v1/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create creates a new document.
func (s *DocumentService) Create(ctx context.Context, req *CreateDocumentRequest) (*Document, error) {
	var doc Document
	if err := s.c.post(ctx, "/api/v1/documents", req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/documents/"+url.PathEscape(id), nil, nil)
}

// bulkIngestResponse wraps the bulk ingestion result.
type bulkIngestResponse struct {
	Written int `json:"written"`
}

// BulkIngest upserts a batch of documents and returns the written count.
func (s *DocumentService) BulkIngest(ctx context.Context, docs []CreateDocumentRequest) (int, error) {
	var resp bulkIngestResponse
	body := map[string]any{"documents": docs}
	if err := s.c.post(ctx, "/api/v1/documents/bulk", body, &resp); err != nil {
		return 0, err
	}
	return resp.Written, nil
}
