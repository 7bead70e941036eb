package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/craftquote/quote-engine/pkg/audit"
	"github.com/craftquote/quote-engine/pkg/engine"
	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
	"github.com/craftquote/quote-engine/pkg/versions"
)

// ScenarioRequest runs a combined swap + adjustment preview. When
// SaveVersion is set the composed tree is persisted with the given notes.
type ScenarioRequest struct {
	Quotation   types.Quotation        `json:"quotation"`
	Swaps       map[string]string      `json:"swaps"`
	Adjustments types.AdjustmentParams `json:"adjustments"`
	Scope       types.ScopeSelection   `json:"scope"`
	SaveVersion bool                   `json:"save_version"`
	Notes       string                 `json:"notes"`
}

// ScenarioResponse wraps the scenario result and any saved version
type ScenarioResponse struct {
	Scenario *engine.ScenarioResult `json:"scenario"`
	Version  *versions.Version      `json:"version,omitempty"`
}

// Scenario runs the combined swap + percentage-adjustment pass
func (d *Deps) Scenario(c *gin.Context) {
	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := quote.Validate(&req.Quotation); err != nil {
		validationError(c, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	result, err := d.Engine.RunScenario(ctx, &req.Quotation, req.Swaps, req.Adjustments, req.Scope.OrDefault())
	if err != nil {
		internalError(c, "scenario failed: "+err.Error())
		return
	}

	resp := ScenarioResponse{Scenario: result}

	if req.SaveVersion {
		if d.Versions == nil {
			writeError(c, "NO_DATABASE", "version persistence requires a configured database", http.StatusServiceUnavailable, nil)
			return
		}
		v, err := d.Versions.Save(ctx, result.Quotation, req.Notes, result.After.Total.StringFixed(2))
		if err != nil {
			internalError(c, "failed to save version: "+err.Error())
			return
		}
		resp.Version = v
	}

	if d.Trail != nil {
		if err := d.Trail.LogScenario(&result.After, result.Totals, audit.Metadata{Source: "api"}); err != nil {
			log.WithError(err).Warn("Failed to write audit record")
		}
	}

	c.JSON(http.StatusOK, resp)
}
