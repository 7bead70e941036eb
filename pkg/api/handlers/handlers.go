// Package handlers implements the HTTP endpoints of the quote engine API.
package handlers

import (
	"github.com/craftquote/quote-engine/pkg/audit"
	"github.com/craftquote/quote-engine/pkg/catalog"
	"github.com/craftquote/quote-engine/pkg/database"
	"github.com/craftquote/quote-engine/pkg/engine"
	"github.com/craftquote/quote-engine/pkg/policy"
	"github.com/craftquote/quote-engine/pkg/versions"
)

// Deps carries the shared collaborators for all handlers. Versions and DB
// are nil when no database is configured; the endpoints that need them
// respond accordingly.
type Deps struct {
	Engine   *engine.Engine
	Catalog  catalog.Provider
	Policies []policy.Policy
	Versions *versions.Store
	Trail    *audit.Trail
	DB       *database.DB
}
