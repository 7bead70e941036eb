// Package report renders client-facing markdown summaries of estimates and
// scenario comparisons.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/craftquote/quote-engine/pkg/diff"
	"github.com/craftquote/quote-engine/pkg/types"
)

// MarkdownEstimate renders an estimate summary with category and space
// tables plus policy results.
func MarkdownEstimate(estimate *types.QuoteEstimate) string {
	var out strings.Builder

	out.WriteString("## Quotation Estimate\n\n")
	out.WriteString(fmt.Sprintf("**Total:** %s %s  \n", estimate.Total.StringFixed(2), estimate.Currency))
	out.WriteString(fmt.Sprintf("**Line items:** %d  \n\n", len(estimate.Items)))

	out.WriteString("### By Category\n\n")
	out.WriteString("| Category | Amount | Items |\n")
	out.WriteString("|----------|-------:|------:|\n")
	for _, cc := range sortedCategories(estimate.ByCategory) {
		out.WriteString(fmt.Sprintf("| %s | %s | %d |\n", cc.Name, cc.Amount.StringFixed(2), cc.ItemCount))
	}
	out.WriteString("\n")

	out.WriteString("### By Space\n\n")
	out.WriteString("| Space | Amount | Items |\n")
	out.WriteString("|-------|-------:|------:|\n")
	for _, sc := range sortedSpaces(estimate.BySpace) {
		out.WriteString(fmt.Sprintf("| %s | %s | %d |\n", sc.Name, sc.Amount.StringFixed(2), sc.ItemCount))
	}
	out.WriteString("\n")

	if len(estimate.PolicyResults) > 0 {
		out.WriteString("### Policy Evaluation\n\n")
		out.WriteString("| Policy | Status | Message |\n")
		out.WriteString("|--------|--------|---------|\n")
		for _, r := range estimate.PolicyResults {
			out.WriteString(fmt.Sprintf("| %s | %s | %s |\n", r.PolicyName, r.Outcome, r.Message))
		}
		out.WriteString("\n")
	}

	if len(estimate.Warnings) > 0 {
		out.WriteString("### Warnings\n\n")
		for _, w := range estimate.Warnings {
			out.WriteString(fmt.Sprintf("- %s\n", w))
		}
		out.WriteString("\n")
	}

	return out.String()
}

// MarkdownScenario renders a before/after comparison of a scenario run
func MarkdownScenario(totals types.ScenarioTotals, d *diff.DetailedDiff, currency string) string {
	var out strings.Builder

	out.WriteString("## Scenario Comparison\n\n")
	out.WriteString(fmt.Sprintf("**In scope:** %s -> %s %s (%s, %s%%)  \n\n",
		totals.Original.StringFixed(2), totals.Final.StringFixed(2), currency,
		totals.Difference.StringFixed(2), totals.PercentageChange.StringFixed(1)))

	changed := changedItems(d)
	if len(changed) > 0 {
		out.WriteString("### Changed Line Items\n\n")
		out.WriteString("| Item | Change | Delta |\n")
		out.WriteString("|------|--------|------:|\n")
		for _, row := range changed {
			name := ""
			if row.After != nil {
				name = row.After.Item.CostItemName
			} else if row.Before != nil {
				name = row.Before.Item.CostItemName
			}
			out.WriteString(fmt.Sprintf("| %s | %s | %s |\n", name, row.ChangeType, row.Delta.StringFixed(2)))
		}
		out.WriteString("\n")
	}

	if len(d.CategoryDeltas) > 0 {
		out.WriteString("### Category Changes\n\n")
		out.WriteString("| Category | Before | After | Delta |\n")
		out.WriteString("|----------|-------:|------:|------:|\n")
		for _, cd := range sortedDeltas(d.CategoryDeltas) {
			if cd.Delta.IsZero() {
				continue
			}
			out.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				cd.Name, cd.BeforeAmount.StringFixed(2), cd.AfterAmount.StringFixed(2), cd.Delta.StringFixed(2)))
		}
		out.WriteString("\n")
	}

	return out.String()
}

func changedItems(d *diff.DetailedDiff) []diff.LineItemDiff {
	var out []diff.LineItemDiff
	for _, row := range d.Items {
		if row.ChangeType != diff.ChangeUnchanged {
			out = append(out, row)
		}
	}
	return out
}

func sortedCategories(m map[string]types.CategoryCost) []types.CategoryCost {
	out := make([]types.CategoryCost, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedSpaces(m map[string]types.SpaceCost) []types.SpaceCost {
	out := make([]types.SpaceCost, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedDeltas(m map[string]diff.CategoryDelta) []diff.CategoryDelta {
	out := make([]diff.CategoryDelta, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
