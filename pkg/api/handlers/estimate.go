package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/craftquote/quote-engine/pkg/audit"
	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

// EstimateRequest carries the quotation snapshot to price
type EstimateRequest struct {
	Quotation types.Quotation `json:"quotation"`
}

// EstimateResponse wraps the priced estimate
type EstimateResponse struct {
	Estimate types.QuoteEstimate `json:"estimate"`
}

// Estimate prices a quotation tree
func (d *Deps) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := quote.Validate(&req.Quotation); err != nil {
		validationError(c, err.Error(), nil)
		return
	}

	result, err := d.Engine.Estimate(c.Request.Context(), &req.Quotation, "")
	if err != nil {
		internalError(c, "estimation failed: "+err.Error())
		return
	}

	if d.Trail != nil {
		if err := d.Trail.LogEstimate(&result.Estimate, audit.Metadata{Source: "api"}); err != nil {
			log.WithError(err).Warn("Failed to write audit record")
		}
	}

	c.JSON(http.StatusOK, EstimateResponse{Estimate: result.Estimate})
}
