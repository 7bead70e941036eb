// Package engine orchestrates the full quotation pricing pipeline: load,
// normalize, price, aggregate, and the combined swap + adjustment scenario.
package engine

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/aggregation"
	"github.com/craftquote/quote-engine/pkg/catalog"
	"github.com/craftquote/quote-engine/pkg/normalize"
	"github.com/craftquote/quote-engine/pkg/pricing"
	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

// Engine wires the catalog, normalizer and calculators together. It holds
// no mutable state, so one engine can serve concurrent scenario previews.
type Engine struct {
	catalog    catalog.Provider
	loader     *quote.Loader
	normalizer *normalize.Normalizer
	aggregator *aggregation.Aggregator
}

func New(provider catalog.Provider, defaultMeasurementUnit string) *Engine {
	return &Engine{
		catalog:    provider,
		loader:     quote.NewLoader(),
		normalizer: normalize.New(defaultMeasurementUnit),
		aggregator: aggregation.NewAggregator(),
	}
}

// EstimateResult wraps an estimate with output helpers
type EstimateResult struct {
	Estimate types.QuoteEstimate
}

// ScenarioResult holds the composed tree and comparison totals of a
// combined swap + adjustment run.
type ScenarioResult struct {
	Quotation *types.Quotation     `json:"quotation"`
	Totals    types.ScenarioTotals `json:"totals"`
	Before    types.QuoteEstimate  `json:"before"`
	After     types.QuoteEstimate  `json:"after"`
}

// EstimateFromFile loads a quotation project file and prices it
func (e *Engine) EstimateFromFile(ctx context.Context, path string) (*EstimateResult, error) {
	q, hash, err := e.loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("quotation loading failed: %w", err)
	}
	return e.Estimate(ctx, q, hash)
}

// Estimate prices a quotation snapshot and aggregates the result
func (e *Engine) Estimate(ctx context.Context, q *types.Quotation, inputHash string) (*EstimateResult, error) {
	normalized, notes := e.normalizer.Process(q)
	items := e.priceQuotation(normalized)

	assumptions := make([]string, 0, len(notes))
	for _, note := range notes {
		assumptions = append(assumptions, note.Reason)
	}

	estimate := e.aggregator.Aggregate(normalized, items, inputHash, assumptions)

	log.WithFields(log.Fields{
		"quotation": q.ID,
		"items":     len(items),
		"total":     estimate.Total.StringFixed(2),
	}).Info("Priced quotation")

	return &EstimateResult{Estimate: estimate}, nil
}

// Adjust applies percentage deltas to in-scope line items and returns a new
// quotation tree. The input snapshot is untouched.
func (e *Engine) Adjust(ctx context.Context, q *types.Quotation, params types.AdjustmentParams, scope types.ScopeSelection) (*types.Quotation, error) {
	categories, err := e.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	out := *q
	out.Spaces = pricing.ApplyAdjustments(q.Spaces, categories, params, scope)
	return &out, nil
}

// Swap replaces cost item references on in-scope line items and returns a
// new quotation tree.
func (e *Engine) Swap(ctx context.Context, q *types.Quotation, swaps map[string]string, scope types.ScopeSelection) (*types.Quotation, error) {
	items, categories, err := e.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	out := *q
	out.Spaces = pricing.ApplySwaps(q.Spaces, swaps, items, categories, scope)
	return &out, nil
}

// RunScenario applies swaps then percentage adjustments in a single pass
// over every in-scope line item. The adjustment bucket is chosen from the
// post-swap category, so swapping into a cheaper category also picks up that
// category's percentage. Totals cover in-scope items only.
func (e *Engine) RunScenario(ctx context.Context, q *types.Quotation, swaps map[string]string, params types.AdjustmentParams, scope types.ScopeSelection) (*ScenarioResult, error) {
	items, categories, err := e.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	normalized, _ := e.normalizer.Process(q)
	table := pricing.NewSwapTable(swaps, items, categories)

	original := decimal.Zero
	final := decimal.Zero

	out := *normalized
	out.Spaces = make([]types.Space, len(normalized.Spaces))
	for i, sp := range normalized.Spaces {
		next := sp
		next.Components = make([]types.Component, len(sp.Components))
		for j, comp := range sp.Components {
			nc := comp
			if pricing.InScope(sp.ID, comp.ID, scope) {
				nc.LineItems = make([]types.LineItem, len(comp.LineItems))
				for k, item := range comp.LineItems {
					swapped, _ := table.Apply(item)
					composed := pricing.AdjustLineItem(swapped, comp.ComponentTypeID, categories, params)
					nc.LineItems[k] = composed

					original = original.Add(pricing.LineAmount(item, nil))
					final = final.Add(pricing.LineAmount(composed, nil))
				}
			}
			next.Components[j] = nc
		}
		out.Spaces[i] = next
	}

	totals := types.ScenarioTotals{
		Original:   original,
		Final:      final,
		Difference: final.Sub(original),
	}
	if original.IsPositive() {
		totals.PercentageChange = final.Sub(original).Div(original).Mul(hundred)
	} else {
		totals.PercentageChange = decimal.Zero
	}

	before := e.aggregator.Aggregate(normalized, e.priceQuotation(normalized), "", nil)
	after := e.aggregator.Aggregate(&out, e.priceQuotation(&out), "", nil)

	log.WithFields(log.Fields{
		"quotation": q.ID,
		"original":  totals.Original.StringFixed(2),
		"final":     totals.Final.StringFixed(2),
	}).Info("Scenario computed")

	return &ScenarioResult{
		Quotation: &out,
		Totals:    totals,
		Before:    before,
		After:     after,
	}, nil
}

// Replacements lists catalog items eligible to replace an in-use material
func (e *Engine) Replacements(ctx context.Context, costItemID string) ([]types.CostItem, error) {
	return e.catalog.Replacements(ctx, costItemID)
}

var hundred = decimal.NewFromInt(100)

func (e *Engine) loadCatalog(ctx context.Context) ([]types.CostItem, []types.Category, error) {
	items, err := e.catalog.CostItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cost items: %w", err)
	}
	categories, err := e.catalog.Categories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return items, categories, nil
}

// priceQuotation walks the tree and prices every line item
func (e *Engine) priceQuotation(q *types.Quotation) []types.PricedLineItem {
	var priced []types.PricedLineItem
	for _, sp := range q.Spaces {
		for _, comp := range sp.Components {
			for _, item := range comp.LineItems {
				amount := pricing.LineAmount(item, nil)
				qty, kind := pricing.LineMeasure(item)
				priced = append(priced, types.PricedLineItem{
					SpaceID:       sp.ID,
					SpaceName:     sp.DisplayName(),
					ComponentID:   comp.ID,
					ComponentName: comp.DisplayName(),
					Item:          item,
					Kind:          string(kind),
					Measure:       qty,
					Amount:        amount,
					Incomplete:    pricing.Incomplete(item),
					Explanation:   pricing.Explain(item, amount),
				})
			}
		}
	}
	return priced
}
