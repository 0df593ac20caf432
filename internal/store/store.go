// Package store provides focused, single-concern data access stores
// for the knowledge base.
//
// Each store owns one domain (documents, ingestion metadata) and embeds
// shared dependencies (Pool, logger) via the Base struct. Stores never
// import each other.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/dbpool"
)

// defaultQueryTimeout bounds every store call. The document scan dominates
// the stats path, so this also caps how long a stats request can run.
const defaultQueryTimeout = 30 * time.Second

// maxListLimit caps limit values for list queries.
const maxListLimit = 1000

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
