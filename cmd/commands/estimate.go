package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/craftquote/quote-engine/pkg/audit"
	"github.com/craftquote/quote-engine/pkg/report"
)

var (
	estimateFile   string
	estimateFormat string
	estimateAudit  bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Price a quotation project file",
	Long: `Load a quotation JSON file, normalize it, and produce a full priced
estimate with per-space and per-category breakdowns.

Examples:
  # Price a quotation
  quote-engine estimate --file quotation.json

  # Machine-readable output
  quote-engine estimate --file quotation.json --format json

  # Markdown report for sharing
  quote-engine estimate --file quotation.json --format markdown`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateFile, "file", "", "Path to quotation JSON file")
	estimateCmd.Flags().StringVar(&estimateFormat, "format", "cli", "Output format (cli, json, markdown)")
	estimateCmd.Flags().BoolVar(&estimateAudit, "audit", false, "Write an audit record for this run")
	estimateCmd.MarkFlagRequired("file")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	log.WithField("file", estimateFile).Info("Starting estimation")

	result, err := rt.eng.EstimateFromFile(ctx, estimateFile)
	if err != nil {
		return fmt.Errorf("estimation failed: %w", err)
	}

	if estimateAudit {
		trail := audit.New(rt.cfg.AuditDir)
		if err := trail.LogEstimate(&result.Estimate, audit.Metadata{Source: "cli"}); err != nil {
			log.WithError(err).Warn("Failed to write audit record")
		}
	}

	switch estimateFormat {
	case "json":
		return result.OutputJSON()
	case "cli":
		return result.OutputCLI()
	case "markdown":
		fmt.Print(report.MarkdownEstimate(&result.Estimate))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", estimateFormat)
	}
}
