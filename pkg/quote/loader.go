// Package quote loads quotation project files and validates the tree before
// it reaches the pricing engine.
package quote

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/craftquote/quote-engine/pkg/types"
)

// Loader handles loading and validating quotation project files
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile reads a quotation JSON file and returns the tree plus a
// sha256 input hash used for determinism checks and audit records.
func (l *Loader) LoadFromFile(path string) (*types.Quotation, string, error) {
	log.WithField("file", path).Info("Loading quotation file")

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read quotation file: %w", err)
	}

	q, err := l.Parse(content)
	if err != nil {
		return nil, "", err
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	log.WithFields(log.Fields{
		"quotation": q.ID,
		"spaces":    len(q.Spaces),
	}).Info("Loaded quotation")

	return q, hash, nil
}

// Parse decodes and validates a quotation document
func (l *Loader) Parse(content []byte) (*types.Quotation, error) {
	var q types.Quotation
	if err := json.Unmarshal(content, &q); err != nil {
		return nil, fmt.Errorf("failed to parse quotation JSON: %w", err)
	}

	if err := Validate(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Validate checks structural integrity: ids present and unique within their
// parent, line items referencing a cost item. Pricing-level gaps (missing
// dimensions, unknown units) are not errors here; the normalizer and the
// calculators degrade them deliberately.
func Validate(q *types.Quotation) error {
	if q.ID == "" {
		return fmt.Errorf("quotation id is required")
	}

	spaceIDs := make(map[string]bool)
	for _, sp := range q.Spaces {
		if sp.ID == "" {
			return fmt.Errorf("space without id in quotation %s", q.ID)
		}
		if spaceIDs[sp.ID] {
			return fmt.Errorf("duplicate space id %s", sp.ID)
		}
		spaceIDs[sp.ID] = true

		compIDs := make(map[string]bool)
		for _, comp := range sp.Components {
			if comp.ID == "" {
				return fmt.Errorf("component without id in space %s", sp.ID)
			}
			if compIDs[comp.ID] {
				return fmt.Errorf("duplicate component id %s in space %s", comp.ID, sp.ID)
			}
			compIDs[comp.ID] = true

			for _, item := range comp.LineItems {
				if item.ID == "" {
					return fmt.Errorf("line item without id in component %s", comp.ID)
				}
				if item.CostItemID == "" {
					return fmt.Errorf("line item %s has no cost item reference", item.ID)
				}
			}
		}
	}

	return nil
}
