// Package normalize sanitizes quotation trees before pricing: it fills
// missing measurement units, clamps negative numeric input and records an
// annotation for every fill so estimates can surface the assumptions made.
package normalize

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/types"
)

// Annotation records one value the normalizer filled or corrected
type Annotation struct {
	SpaceID     string `json:"space_id"`
	ComponentID string `json:"component_id"`
	LineItemID  string `json:"line_item_id"`
	Field       string `json:"field"`
	Reason      string `json:"reason"`
}

// Normalizer prepares quotation trees for the pure calculators, which
// expect negative input to have been clamped already.
type Normalizer struct {
	defaultUnit string
}

func New(defaultMeasurementUnit string) *Normalizer {
	if defaultMeasurementUnit == "" {
		defaultMeasurementUnit = "ft"
	}
	return &Normalizer{defaultUnit: defaultMeasurementUnit}
}

// Process returns a sanitized copy of the quotation plus annotations for
// every change. The input is never mutated.
func (n *Normalizer) Process(q *types.Quotation) (*types.Quotation, []Annotation) {
	out := *q
	var notes []Annotation

	out.Spaces = make([]types.Space, len(q.Spaces))
	for i, sp := range q.Spaces {
		next := sp
		if sp.Name == "" && sp.DefaultName == "" {
			next.DefaultName = fmt.Sprintf("Space %d", i+1)
			notes = append(notes, Annotation{
				SpaceID: sp.ID,
				Field:   "default_name",
				Reason:  "space had no name, generated a placeholder",
			})
		}

		next.Components = make([]types.Component, len(sp.Components))
		for j, comp := range sp.Components {
			nc := comp
			nc.LineItems = make([]types.LineItem, len(comp.LineItems))
			for k, item := range comp.LineItems {
				nc.LineItems[k] = n.processLineItem(sp.ID, comp.ID, item, &notes)
			}
			next.Components[j] = nc
		}
		out.Spaces[i] = next
	}

	if len(notes) > 0 {
		log.WithFields(log.Fields{
			"quotation":   q.ID,
			"annotations": len(notes),
		}).Info("Normalized quotation input")
	}

	return &out, notes
}

func (n *Normalizer) processLineItem(spaceID, componentID string, item types.LineItem, notes *[]Annotation) types.LineItem {
	annotate := func(field, reason string) {
		*notes = append(*notes, Annotation{
			SpaceID:     spaceID,
			ComponentID: componentID,
			LineItemID:  item.ID,
			Field:       field,
			Reason:      reason,
		})
	}

	if item.MeasurementUnit == "" {
		item.MeasurementUnit = n.defaultUnit
		annotate("measurement_unit", fmt.Sprintf("measurement unit not set, assuming %s", n.defaultUnit))
	}

	item.Length = clampDimension(item.Length, "length", annotate)
	item.Width = clampDimension(item.Width, "width", annotate)
	item.Quantity = clampDimension(item.Quantity, "quantity", annotate)

	if item.Rate.IsNegative() {
		item.Rate = decimal.Zero
		annotate("rate", "negative rate clamped to zero")
	}

	return item
}

func clampDimension(v *float64, field string, annotate func(field, reason string)) *float64 {
	if v == nil || *v >= 0 {
		return v
	}
	zero := 0.0
	annotate(field, fmt.Sprintf("negative %s clamped to zero", field))
	return &zero
}
