package catalog

import "context"

// Snapshot is the persisted form of the product cache
type Snapshot struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
}

// Cache persists the catalog snapshot under a single named storage slot so
// the last fetched catalog survives process restarts.
type Cache interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
