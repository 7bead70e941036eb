package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

// SwapRequest replaces cost item references across a quotation
type SwapRequest struct {
	Quotation types.Quotation      `json:"quotation"`
	Swaps     map[string]string    `json:"swaps"` // cost item id -> replacement id
	Scope     types.ScopeSelection `json:"scope"`
}

// Swap applies material swaps and returns the new tree priced
func (d *Deps) Swap(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := quote.Validate(&req.Quotation); err != nil {
		validationError(c, err.Error(), nil)
		return
	}
	if len(req.Swaps) == 0 {
		validationError(c, "swaps must not be empty", nil)
		return
	}

	ctx := c.Request.Context()
	swapped, err := d.Engine.Swap(ctx, &req.Quotation, req.Swaps, req.Scope.OrDefault())
	if err != nil {
		internalError(c, "swap failed: "+err.Error())
		return
	}

	result, err := d.Engine.Estimate(ctx, swapped, "")
	if err != nil {
		internalError(c, "estimation failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, QuotationResponse{Quotation: *swapped, Estimate: result.Estimate})
}
