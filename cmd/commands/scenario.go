package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/craftquote/quote-engine/pkg/audit"
	"github.com/craftquote/quote-engine/pkg/diff"
	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/report"
	"github.com/craftquote/quote-engine/pkg/versions"
)

var (
	scenarioFile       string
	scenarioSwaps      []string
	scenarioGlobal     string
	scenarioCategories []string
	scenarioComponents []string
	scenarioSpaces     []string
	scenarioScopeComps []string
	scenarioFormat     string
	scenarioSave       bool
	scenarioNotes      string
	scenarioAudit      bool
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Preview combined swaps and adjustments",
	Long: `Run material swaps and percentage adjustments together over a
quotation and compare the totals before and after. The input file is never
modified; pass --save to persist the composed tree as a version.

Examples:
  # Swap to a cheaper board and discount plywood 5%%
  quote-engine scenario --file quotation.json \
    --swap ci-ply-19=ci-mdf-18 --category cat-plywood=-5

  # Scope to one space and save the result
  quote-engine scenario --file quotation.json --global 10 \
    --space sp-1 --save --notes "client revision 2"`,
	RunE: runScenario,
}

func init() {
	scenarioCmd.Flags().StringVar(&scenarioFile, "file", "", "Path to quotation JSON file")
	scenarioCmd.Flags().StringArrayVar(&scenarioSwaps, "swap", nil, "Swap as old-item-id=new-item-id (repeatable)")
	scenarioCmd.Flags().StringVar(&scenarioGlobal, "global", "0", "Global percentage delta")
	scenarioCmd.Flags().StringArrayVar(&scenarioCategories, "category", nil, "Category percentage as category-id=pct (repeatable)")
	scenarioCmd.Flags().StringArrayVar(&scenarioComponents, "component-type", nil, "Component type percentage as type-id=pct (repeatable)")
	scenarioCmd.Flags().StringArrayVar(&scenarioSpaces, "space", nil, "Limit to space id (repeatable)")
	scenarioCmd.Flags().StringArrayVar(&scenarioScopeComps, "component", nil, "Limit to space-id:component-id (repeatable)")
	scenarioCmd.Flags().StringVar(&scenarioFormat, "format", "cli", "Output format (cli, json, markdown)")
	scenarioCmd.Flags().BoolVar(&scenarioSave, "save", false, "Persist the composed tree as a version (requires database)")
	scenarioCmd.Flags().StringVar(&scenarioNotes, "notes", "", "Notes for the saved version")
	scenarioCmd.Flags().BoolVar(&scenarioAudit, "audit", false, "Write an audit record for this run")
	scenarioCmd.MarkFlagRequired("file")
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	swaps, err := parseSwaps(scenarioSwaps)
	if err != nil {
		return err
	}

	params, err := buildAdjustmentParams(scenarioGlobal, scenarioCategories, scenarioComponents)
	if err != nil {
		return err
	}

	scope, err := buildScope(scenarioSpaces, scenarioScopeComps)
	if err != nil {
		return err
	}

	q, _, err := quote.NewLoader().LoadFromFile(scenarioFile)
	if err != nil {
		return fmt.Errorf("quotation loading failed: %w", err)
	}

	result, err := rt.eng.RunScenario(ctx, q, swaps, params, scope)
	if err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}

	if scenarioSave {
		if rt.db == nil {
			return fmt.Errorf("--save requires a configured database")
		}
		store := versions.NewStore(rt.db)
		v, err := store.Save(ctx, result.Quotation, scenarioNotes, result.After.Total.StringFixed(2))
		if err != nil {
			return fmt.Errorf("failed to save version: %w", err)
		}
		log.WithField("version", v.ID).Info("Version saved")
	}

	if scenarioAudit {
		trail := audit.New(rt.cfg.AuditDir)
		if err := trail.LogScenario(&result.After, result.Totals, audit.Metadata{Source: "cli"}); err != nil {
			log.WithError(err).Warn("Failed to write audit record")
		}
	}

	switch scenarioFormat {
	case "json":
		return result.OutputJSON()
	case "cli":
		return result.OutputCLI()
	case "markdown":
		d := diff.New().Diff(&result.Before, &result.After)
		fmt.Print(report.MarkdownScenario(result.Totals, d, result.After.Currency))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", scenarioFormat)
	}
}
