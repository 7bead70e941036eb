package commands

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/catalog"
	"github.com/craftquote/quote-engine/pkg/config"
	"github.com/craftquote/quote-engine/pkg/database"
	"github.com/craftquote/quote-engine/pkg/engine"
	"github.com/craftquote/quote-engine/pkg/types"
)

// runtime bundles the engine and its catalog source for a single CLI run.
// The catalog comes from Postgres when a database is configured, otherwise
// from the configured catalog file.
type runtime struct {
	cfg      *config.Config
	eng      *engine.Engine
	provider catalog.Provider
	db       *database.DB
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if catalogFlag != "" {
		cfg.CatalogFile = catalogFlag
		cfg.DatabaseURL = ""
	}

	rt := &runtime{cfg: cfg}

	switch {
	case cfg.HasDatabase():
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		rt.db = db
		rt.provider = catalog.NewPostgres(db)
	case cfg.CatalogFile != "":
		mem, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog file: %w", err)
		}
		rt.provider = mem
	default:
		return nil, fmt.Errorf("no catalog configured: set QUOTE_DATABASE_URL or QUOTE_CATALOG_FILE")
	}

	rt.eng = engine.New(rt.provider, cfg.DefaultMeasurementUnit)
	return rt, nil
}

func (r *runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// parsePercent parses a decimal percentage flag value
func parsePercent(value string) (decimal.Decimal, error) {
	pct, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q: %w", value, err)
	}
	return pct, nil
}

// parsePercentMap parses repeated key=percent flag values
func parsePercentMap(pairs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid key=percent pair %q", pair)
		}
		pct, err := parsePercent(value)
		if err != nil {
			return nil, err
		}
		out[key] = pct
	}
	return out, nil
}

// parseSwaps parses repeated old=new cost item id pairs
func parseSwaps(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		from, to, found := strings.Cut(pair, "=")
		if !found || from == "" || to == "" {
			return nil, fmt.Errorf("invalid swap pair %q, expected old=new", pair)
		}
		out[from] = to
	}
	return out, nil
}

// buildScope derives a scope selection from --space and --component flags.
// Component keys use space-id:component-id form. No flags means everything.
func buildScope(spaces, components []string) (types.ScopeSelection, error) {
	switch {
	case len(components) > 0:
		if len(spaces) > 0 {
			return types.ScopeSelection{}, fmt.Errorf("--space and --component are mutually exclusive")
		}
		for _, key := range components {
			if !strings.Contains(key, ":") {
				return types.ScopeSelection{}, fmt.Errorf("invalid component key %q, expected space-id:component-id", key)
			}
		}
		return types.ScopeSelection{Mode: types.ScopeModeComponents, ComponentKeys: components}, nil
	case len(spaces) > 0:
		return types.ScopeSelection{Mode: types.ScopeModeSpaces, SpaceIDs: spaces}, nil
	default:
		return types.ScopeAll(), nil
	}
}
