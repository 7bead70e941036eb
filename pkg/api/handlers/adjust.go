package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

// AdjustRequest applies percentage deltas to a quotation
type AdjustRequest struct {
	Quotation   types.Quotation       `json:"quotation"`
	Adjustments types.AdjustmentParams `json:"adjustments"`
	Scope       types.ScopeSelection  `json:"scope"`
}

// QuotationResponse returns a transformed tree with its new estimate
type QuotationResponse struct {
	Quotation types.Quotation     `json:"quotation"`
	Estimate  types.QuoteEstimate `json:"estimate"`
}

// Adjust applies percentage adjustments and returns the new tree priced
func (d *Deps) Adjust(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := quote.Validate(&req.Quotation); err != nil {
		validationError(c, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	adjusted, err := d.Engine.Adjust(ctx, &req.Quotation, req.Adjustments, req.Scope.OrDefault())
	if err != nil {
		internalError(c, "adjustment failed: "+err.Error())
		return
	}

	result, err := d.Engine.Estimate(ctx, adjusted, "")
	if err != nil {
		internalError(c, "estimation failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, QuotationResponse{Quotation: *adjusted, Estimate: result.Estimate})
}
