package employee

import (
	"context"
	"encoding/json"
)

// Store persists the whole collection as one snapshot. Load returns the
// raw stored records in order and an empty slice when nothing was saved.
type Store interface {
	Load(ctx context.Context) ([]json.RawMessage, error)
	Save(ctx context.Context, records []Record) error
}
