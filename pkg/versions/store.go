// Package versions persists quotation version records: a scenario result
// saved with free-text notes, so a priced what-if can become a committed
// revision. The pricing engine itself never writes; callers decide when a
// result is worth keeping.
package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craftquote/quote-engine/pkg/database"
	"github.com/craftquote/quote-engine/pkg/types"
)

// Version is one saved revision of a quotation tree
type Version struct {
	ID          string          `json:"id"`
	QuotationID string          `json:"quotation_id"`
	Notes       string          `json:"notes"`
	Total       string          `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	Tree        types.Quotation `json:"tree"`
}

// Store persists versions in the quotation_versions table
type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Save stores a quotation tree as a new version record and returns it
func (s *Store) Save(ctx context.Context, q *types.Quotation, notes string, total string) (*Version, error) {
	tree, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotation tree: %w", err)
	}

	v := &Version{
		ID:          uuid.New().String(),
		QuotationID: q.ID,
		Notes:       notes,
		Total:       total,
		CreatedAt:   time.Now().UTC(),
		Tree:        *q,
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO quotation_versions (id, quotation_id, notes, total, tree, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.QuotationID, v.Notes, v.Total, tree, v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save version: %w", err)
	}

	return v, nil
}

// List returns all versions of a quotation, newest first
func (s *Store) List(ctx context.Context, quotationID string) ([]Version, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, quotation_id, notes, total, tree, created_at
		FROM quotation_versions
		WHERE quotation_id = $1
		ORDER BY created_at DESC`, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var out []Version
	for rows.Next() {
		var v Version
		var tree []byte
		if err := rows.Scan(&v.ID, &v.QuotationID, &v.Notes, &v.Total, &tree, &v.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tree, &v.Tree); err != nil {
			return nil, fmt.Errorf("failed to decode version %s tree: %w", v.ID, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
