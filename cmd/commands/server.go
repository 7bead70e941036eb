package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/craftquote/quote-engine/pkg/api"
	"github.com/craftquote/quote-engine/pkg/api/handlers"
	"github.com/craftquote/quote-engine/pkg/audit"
	"github.com/craftquote/quote-engine/pkg/policy"
	"github.com/craftquote/quote-engine/pkg/versions"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the quote engine HTTP API",
	Long: `Start the HTTP API server. The catalog comes from Postgres when a
database is configured, otherwise from the configured catalog file; version
persistence is only available with a database.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverPort, "port", "", "Port to listen on (defaults to configured port)")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	deps := &handlers.Deps{
		Engine:  rt.eng,
		Catalog: rt.provider,
		Trail:   audit.New(rt.cfg.AuditDir),
		DB:      rt.db,
	}

	if rt.db != nil {
		deps.Versions = versions.NewStore(rt.db)
	}

	if rt.cfg.PolicyFile != "" {
		policies, err := policy.LoadFile(rt.cfg.PolicyFile)
		if err != nil {
			return fmt.Errorf("failed to load policies: %w", err)
		}
		deps.Policies = policies
		log.WithField("count", len(policies)).Info("Loaded budget policies")
	}

	port := serverPort
	if port == "" {
		port = rt.cfg.Port
	}

	return api.NewServer(deps, rt.cfg.CORSOrigins).Run(port)
}
