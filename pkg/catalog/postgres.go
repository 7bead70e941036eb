package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/database"
	"github.com/craftquote/quote-engine/pkg/types"
)

// Postgres serves the catalog from the hosted cost_items / categories /
// component_types tables.
type Postgres struct {
	db *database.DB
}

func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CostItems(ctx context.Context) ([]types.CostItem, error) {
	rows, err := p.db.Pool.Query(ctx, `
		SELECT id, name, category_id, unit_code, default_rate::text
		FROM cost_items
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost items: %w", err)
	}
	defer rows.Close()

	return scanCostItems(rows)
}

func (p *Postgres) CostItem(ctx context.Context, id string) (types.CostItem, error) {
	row := p.db.Pool.QueryRow(ctx, `
		SELECT id, name, category_id, unit_code, default_rate::text
		FROM cost_items
		WHERE id = $1`, id)

	item, err := scanCostItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.CostItem{}, ErrNotFound
	}
	return item, err
}

func (p *Postgres) Categories(ctx context.Context) ([]types.Category, error) {
	rows, err := p.db.Pool.Query(ctx, `SELECT id, name, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var out []types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) ComponentTypes(ctx context.Context) ([]types.ComponentType, error) {
	rows, err := p.db.Pool.Query(ctx, `SELECT id, name FROM component_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query component types: %w", err)
	}
	defer rows.Close()

	var out []types.ComponentType
	for rows.Next() {
		var ct types.ComponentType
		if err := rows.Scan(&ct.ID, &ct.Name); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

func (p *Postgres) Replacements(ctx context.Context, costItemID string) ([]types.CostItem, error) {
	if _, err := p.CostItem(ctx, costItemID); err != nil {
		return nil, err
	}

	// Same category and unit code keeps the measurement kind stable across
	// a swap.
	rows, err := p.db.Pool.Query(ctx, `
		SELECT ci.id, ci.name, ci.category_id, ci.unit_code, ci.default_rate::text
		FROM cost_items ci
		INNER JOIN cost_items target ON target.id = $1
		WHERE ci.category_id = target.category_id
		  AND lower(ci.unit_code) = lower(target.unit_code)
		  AND ci.id <> target.id
		ORDER BY ci.name`, costItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replacements: %w", err)
	}
	defer rows.Close()

	return scanCostItems(rows)
}

func scanCostItems(rows pgx.Rows) ([]types.CostItem, error) {
	var out []types.CostItem
	for rows.Next() {
		item, err := scanCostItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanCostItem(row pgx.Row) (types.CostItem, error) {
	var item types.CostItem
	var rate string
	if err := row.Scan(&item.ID, &item.Name, &item.CategoryID, &item.UnitCode, &rate); err != nil {
		return types.CostItem{}, err
	}

	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		return types.CostItem{}, fmt.Errorf("invalid default_rate for cost item %s: %w", item.ID, err)
	}
	item.DefaultRate = parsed
	return item, nil
}
