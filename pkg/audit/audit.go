// Package audit writes JSON records of estimate and scenario runs so priced
// quotations can be traced back to their exact input.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/types"
)

// Trail manages audit record files under a configured directory
type Trail struct {
	auditDir string
}

func New(auditDir string) *Trail {
	return &Trail{auditDir: auditDir}
}

// Record is one persisted audit entry
type Record struct {
	Timestamp    time.Time             `json:"timestamp"`
	EstimateID   string                `json:"estimate_id"`
	QuotationID  string                `json:"quotation_id"`
	InputHash    string                `json:"input_hash,omitempty"`
	Total        decimal.Decimal       `json:"total"`
	Currency     string                `json:"currency"`
	ItemCount    int                   `json:"item_count"`
	WarningCount int                   `json:"warning_count"`
	Assumptions  []string              `json:"assumptions,omitempty"`
	Scenario     *types.ScenarioTotals `json:"scenario,omitempty"`
	Metadata     Metadata              `json:"metadata"`
}

// Metadata captures where a run came from
type Metadata struct {
	User   string `json:"user,omitempty"`
	Source string `json:"source"` // cli, api
}

// LogEstimate writes an audit record for a plain estimate run
func (t *Trail) LogEstimate(estimate *types.QuoteEstimate, meta Metadata) error {
	return t.write(Record{
		Timestamp:    time.Now().UTC(),
		EstimateID:   estimate.ID,
		QuotationID:  estimate.QuotationID,
		InputHash:    estimate.InputHash,
		Total:        estimate.Total,
		Currency:     estimate.Currency,
		ItemCount:    len(estimate.Items),
		WarningCount: len(estimate.Warnings),
		Assumptions:  estimate.Assumptions,
		Metadata:     meta,
	})
}

// LogScenario writes an audit record for a combined scenario run
func (t *Trail) LogScenario(estimate *types.QuoteEstimate, totals types.ScenarioTotals, meta Metadata) error {
	return t.write(Record{
		Timestamp:    time.Now().UTC(),
		EstimateID:   estimate.ID,
		QuotationID:  estimate.QuotationID,
		Total:        estimate.Total,
		Currency:     estimate.Currency,
		ItemCount:    len(estimate.Items),
		WarningCount: len(estimate.Warnings),
		Scenario:     &totals,
		Metadata:     meta,
	})
}

func (t *Trail) write(record Record) error {
	if err := os.MkdirAll(t.auditDir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	filename := fmt.Sprintf("estimate_%s_%s.json",
		record.EstimateID, record.Timestamp.Format("20060102_150405"))
	path := filepath.Join(t.auditDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audit file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}

	log.WithField("file", path).Info("Audit record written")
	return nil
}

// VerifyDeterminism checks that two estimates for the same input hash agree
// on the total.
func (t *Trail) VerifyDeterminism(a, b *types.QuoteEstimate) bool {
	if a.InputHash != b.InputHash {
		return false
	}
	return a.Total.Equal(b.Total)
}
