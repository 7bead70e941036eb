package types

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CostItem is a catalog entry for a priced material or labour unit
type CostItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`         // e.g., 18mm MDF board
	CategoryID  string          `json:"category_id"`  // e.g., Plywood
	UnitCode    string          `json:"unit_code"`    // sqft, rft, nos, set, lot, lumpsum, kg, ltr
	DefaultRate decimal.Decimal `json:"default_rate"` // catalog list price per unit
}

// Category groups cost items and keys adjustment/swap compatibility
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // display only
}

// ComponentType classifies components (wardrobe, kitchen base unit, ...)
type ComponentType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineItem is one costed row inside a component. The cost item identity is
// denormalized onto the row at add-time; CategoryID stays the canonical link
// and name/color are a refreshable display cache.
type LineItem struct {
	ID           string `json:"id"`
	CostItemID   string `json:"cost_item_id"`
	CostItemName string `json:"cost_item_name"`

	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color,omitempty"`

	UnitCode string `json:"unit_code"`

	// Rate is the active price; DefaultRate snapshots the catalog rate at
	// add-time and is display-only.
	Rate        decimal.Decimal `json:"rate"`
	DefaultRate decimal.Decimal `json:"default_rate"`

	// Raw dimensions in MeasurementUnit. Nil means not yet entered, which
	// prices as zero contribution rather than an error.
	Length          *float64 `json:"length,omitempty"`
	Width           *float64 `json:"width,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	MeasurementUnit string   `json:"measurement_unit,omitempty"` // mm, cm, m, in, ft
}

// Component is a buildable unit inside a space, e.g. a wardrobe
type Component struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	CustomName      string     `json:"custom_name,omitempty"`
	ComponentTypeID string     `json:"component_type_id"`
	LineItems       []LineItem `json:"line_items"`
}

// DisplayName prefers the user-entered name over the type default
func (c Component) DisplayName() string {
	if c.CustomName != "" {
		return c.CustomName
	}
	return c.Name
}

// Space is a room or area in the project
type Space struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DefaultName string      `json:"default_name,omitempty"`
	Components  []Component `json:"components"`
}

// DisplayName prefers the user-entered name over the generated default
func (s Space) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.DefaultName
}

// Quotation is the full project tree the pricing engine operates on.
// Engines treat it as an immutable snapshot and return new trees.
type Quotation struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Currency string  `json:"currency"`
	Spaces   []Space `json:"spaces"`
}

// ScopeMode selects how a pricing operation is constrained
type ScopeMode string

const (
	ScopeModeAll        ScopeMode = "all"
	ScopeModeSpaces     ScopeMode = "spaces"
	ScopeModeComponents ScopeMode = "components"
)

// ScopeSelection defines the membership test used by every pricing operation
type ScopeSelection struct {
	Mode          ScopeMode `json:"mode"`
	SpaceIDs      []string  `json:"space_ids,omitempty"`
	ComponentKeys []string  `json:"component_keys,omitempty"` // "spaceID:componentID"
}

// ScopeAll includes every space and component
func ScopeAll() ScopeSelection {
	return ScopeSelection{Mode: ScopeModeAll}
}

// ComponentKey builds the composite key used by component-mode scopes
func ComponentKey(spaceID, componentID string) string {
	return fmt.Sprintf("%s:%s", spaceID, componentID)
}

// OrDefault treats an unset mode as all. Unrecognized non-empty modes are
// left alone so the membership test can fail closed on them.
func (s ScopeSelection) OrDefault() ScopeSelection {
	if s.Mode == "" {
		return ScopeAll()
	}
	return s
}

// AdjustmentMode selects which percentage buckets apply
type AdjustmentMode string

const (
	AdjustByCategory  AdjustmentMode = "category"
	AdjustByComponent AdjustmentMode = "component"
)

// AdjustmentParams holds the percentage deltas for an adjustment run.
// The effective percentage for a line item is GlobalPct plus the bucket
// matching the run mode; buckets without an entry contribute zero.
type AdjustmentParams struct {
	Mode         AdjustmentMode             `json:"mode"`
	GlobalPct    decimal.Decimal            `json:"global_pct"`
	CategoryPct  map[string]decimal.Decimal `json:"category_pct,omitempty"`  // category id -> pct
	ComponentPct map[string]decimal.Decimal `json:"component_pct,omitempty"` // component type id -> pct
}

// PricedLineItem is one line item with its computed amount and placement
type PricedLineItem struct {
	SpaceID       string          `json:"space_id"`
	SpaceName     string          `json:"space_name"`
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	Item          LineItem        `json:"item"`
	Kind          string          `json:"kind"`       // area, length, quantity, fixed
	Measure       float64         `json:"measure"`    // canonical quantity (sqft, ft, count)
	Amount        decimal.Decimal `json:"amount"`
	Incomplete    bool            `json:"incomplete"` // dimensions missing, priced as zero
	Explanation   string          `json:"explanation"`
}

// SpaceCost aggregates amounts for one space
type SpaceCost struct {
	SpaceID   string          `json:"space_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	ItemCount int             `json:"item_count"`
}

// CategoryCost aggregates amounts for one category
type CategoryCost struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	ItemCount  int             `json:"item_count"`
}

// QuoteEstimate is a complete priced view of a quotation
type QuoteEstimate struct {
	ID            string                  `json:"id"`
	QuotationID   string                  `json:"quotation_id"`
	InputHash     string                  `json:"input_hash"`
	Currency      string                  `json:"currency"`
	GeneratedAt   time.Time               `json:"generated_at"`
	Items         []PricedLineItem        `json:"items"`
	BySpace       map[string]SpaceCost    `json:"by_space"`
	ByCategory    map[string]CategoryCost `json:"by_category"`
	Total         decimal.Decimal         `json:"total"`
	Warnings      []string                `json:"warnings,omitempty"`
	Assumptions   []string                `json:"assumptions,omitempty"`
	PolicyResults []PolicyResult          `json:"policy_results,omitempty"`
}

// ScenarioTotals compares a quotation before and after a scenario run
type ScenarioTotals struct {
	Original         decimal.Decimal `json:"original"`
	Final            decimal.Decimal `json:"final"`
	Difference       decimal.Decimal `json:"difference"`
	PercentageChange decimal.Decimal `json:"percentage_change"` // 0 when original total is 0
}

// PolicyOutcome represents a budget policy evaluation result
type PolicyOutcome string

const (
	PolicyPass PolicyOutcome = "PASS"
	PolicyWarn PolicyOutcome = "WARN"
	PolicyFail PolicyOutcome = "FAIL"
)

// PolicyResult represents one policy evaluation outcome
type PolicyResult struct {
	PolicyName string        `json:"policy_name"`
	Outcome    PolicyOutcome `json:"outcome"`
	Message    string        `json:"message"`
}
