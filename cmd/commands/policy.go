package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftquote/quote-engine/pkg/policy"
	"github.com/craftquote/quote-engine/pkg/quote"
)

var (
	policyQuoteFile string
	policyRulesFile string
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Evaluate a quotation against budget policies",
	Long: `Price a quotation and evaluate the result against budget policies
written in HCL. Exits non-zero when any policy fails.

Example:
  quote-engine policy --file quotation.json --policies budgets.hcl`,
	RunE: runPolicy,
}

func init() {
	policyCmd.Flags().StringVar(&policyQuoteFile, "file", "", "Path to quotation JSON file")
	policyCmd.Flags().StringVar(&policyRulesFile, "policies", "", "Path to HCL policy file (defaults to configured policy file)")
	policyCmd.MarkFlagRequired("file")
}

func runPolicy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	rulesFile := policyRulesFile
	if rulesFile == "" {
		rulesFile = rt.cfg.PolicyFile
	}
	if rulesFile == "" {
		return fmt.Errorf("no policy file: pass --policies or set QUOTE_POLICY_FILE")
	}

	policies, err := policy.LoadFile(rulesFile)
	if err != nil {
		return fmt.Errorf("failed to load policies: %w", err)
	}

	q, hash, err := quote.NewLoader().LoadFromFile(policyQuoteFile)
	if err != nil {
		return fmt.Errorf("quotation loading failed: %w", err)
	}

	result, err := rt.eng.Estimate(ctx, q, hash)
	if err != nil {
		return fmt.Errorf("estimation failed: %w", err)
	}

	pe := policy.New()
	pe.LoadPolicies(policies)
	results := pe.Evaluate(&result.Estimate, q)

	fmt.Printf("\nPolicy evaluation for %s (total %s %s)\n\n",
		result.Estimate.QuotationID, result.Estimate.Total.StringFixed(2), result.Estimate.Currency)
	for _, r := range results {
		fmt.Printf("  [%s] %-30s %s\n", r.Outcome, r.PolicyName, r.Message)
	}
	fmt.Println()

	if pe.HasFailures(results) {
		return fmt.Errorf("one or more policies failed")
	}
	return nil
}
