// Package policy evaluates quote estimates against budget policies.
package policy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/types"
)

type PolicyType string

const (
	PolicyTypeTotalBudget    PolicyType = "TOTAL_BUDGET"
	PolicyTypeCategoryBudget PolicyType = "CATEGORY_BUDGET"
	PolicyTypeSpaceBudget    PolicyType = "SPACE_BUDGET"
	PolicyTypeComponentCount PolicyType = "COMPONENT_COUNT"
)

// Policy is one budget rule. MaxAmount caps spend for budget policies;
// WarnThreshold, when positive, produces a warning below the cap.
type Policy struct {
	Name          string
	Type          PolicyType
	Category      string // for CATEGORY_BUDGET, matched by category name
	Space         string // for SPACE_BUDGET, matched by space display name
	ComponentType string // for COMPONENT_COUNT, component type id
	MaxAmount     decimal.Decimal
	WarnThreshold decimal.Decimal
	MaxCount      int
}

// Engine evaluates estimates against a loaded policy set
type Engine struct {
	policies []Policy
}

func New() *Engine {
	return &Engine{}
}

func (pe *Engine) LoadPolicies(policies []Policy) {
	pe.policies = policies
}

// Evaluate checks an estimate (and its quotation tree, for count policies)
// against all loaded policies.
func (pe *Engine) Evaluate(estimate *types.QuoteEstimate, q *types.Quotation) []types.PolicyResult {
	var results []types.PolicyResult
	for _, p := range pe.policies {
		results = append(results, pe.evaluatePolicy(p, estimate, q))
	}
	return results
}

// HasFailures reports whether any policy failed
func (pe *Engine) HasFailures(results []types.PolicyResult) bool {
	for _, r := range results {
		if r.Outcome == types.PolicyFail {
			return true
		}
	}
	return false
}

func (pe *Engine) evaluatePolicy(p Policy, estimate *types.QuoteEstimate, q *types.Quotation) types.PolicyResult {
	switch p.Type {
	case PolicyTypeTotalBudget:
		return pe.evaluateBudget(p, "total", estimate.Total)
	case PolicyTypeCategoryBudget:
		return pe.evaluateBudget(p, fmt.Sprintf("category %s", p.Category), categoryAmount(estimate, p.Category))
	case PolicyTypeSpaceBudget:
		return pe.evaluateBudget(p, fmt.Sprintf("space %s", p.Space), spaceAmount(estimate, p.Space))
	case PolicyTypeComponentCount:
		return pe.evaluateComponentCount(p, q)
	default:
		return types.PolicyResult{
			PolicyName: p.Name,
			Outcome:    types.PolicyFail,
			Message:    fmt.Sprintf("Unknown policy type: %s", p.Type),
		}
	}
}

func (pe *Engine) evaluateBudget(p Policy, subject string, amount decimal.Decimal) types.PolicyResult {
	if amount.GreaterThan(p.MaxAmount) {
		over := decimal.Zero
		if p.MaxAmount.IsPositive() {
			over = amount.Sub(p.MaxAmount).Div(p.MaxAmount).Mul(decimal.NewFromInt(100))
		}
		return types.PolicyResult{
			PolicyName: p.Name,
			Outcome:    types.PolicyFail,
			Message: fmt.Sprintf("%s amount %s exceeds budget of %s (%s%% over)",
				subject, amount.StringFixed(2), p.MaxAmount.StringFixed(2), over.StringFixed(1)),
		}
	}

	if p.WarnThreshold.IsPositive() && amount.GreaterThan(p.WarnThreshold) {
		return types.PolicyResult{
			PolicyName: p.Name,
			Outcome:    types.PolicyWarn,
			Message: fmt.Sprintf("%s amount %s exceeds warning threshold of %s",
				subject, amount.StringFixed(2), p.WarnThreshold.StringFixed(2)),
		}
	}

	return types.PolicyResult{
		PolicyName: p.Name,
		Outcome:    types.PolicyPass,
		Message: fmt.Sprintf("%s amount %s within budget of %s",
			subject, amount.StringFixed(2), p.MaxAmount.StringFixed(2)),
	}
}

func (pe *Engine) evaluateComponentCount(p Policy, q *types.Quotation) types.PolicyResult {
	count := 0
	if q != nil {
		for _, sp := range q.Spaces {
			for _, comp := range sp.Components {
				if comp.ComponentTypeID == p.ComponentType {
					count++
				}
			}
		}
	}

	if count > p.MaxCount {
		return types.PolicyResult{
			PolicyName: p.Name,
			Outcome:    types.PolicyFail,
			Message:    fmt.Sprintf("%d %s components exceeds limit of %d", count, p.ComponentType, p.MaxCount),
		}
	}

	return types.PolicyResult{
		PolicyName: p.Name,
		Outcome:    types.PolicyPass,
		Message:    fmt.Sprintf("%d %s components within limit of %d", count, p.ComponentType, p.MaxCount),
	}
}

func categoryAmount(estimate *types.QuoteEstimate, name string) decimal.Decimal {
	for _, cc := range estimate.ByCategory {
		if cc.Name == name {
			return cc.Amount
		}
	}
	return decimal.Zero
}

func spaceAmount(estimate *types.QuoteEstimate, name string) decimal.Decimal {
	for _, sc := range estimate.BySpace {
		if sc.Name == name {
			return sc.Amount
		}
	}
	return decimal.Zero
}

// Helpers to create common policies

func NewTotalBudgetPolicy(name string, maxAmount, warnThreshold decimal.Decimal) Policy {
	return Policy{Name: name, Type: PolicyTypeTotalBudget, MaxAmount: maxAmount, WarnThreshold: warnThreshold}
}

func NewCategoryBudgetPolicy(name, category string, maxAmount, warnThreshold decimal.Decimal) Policy {
	return Policy{Name: name, Type: PolicyTypeCategoryBudget, Category: category, MaxAmount: maxAmount, WarnThreshold: warnThreshold}
}

func NewComponentCountPolicy(name, componentType string, maxCount int) Policy {
	return Policy{Name: name, Type: PolicyTypeComponentCount, ComponentType: componentType, MaxCount: maxCount}
}
