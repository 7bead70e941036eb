package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftquote/quote-engine/pkg/policy"
	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

// PolicyRequest evaluates the configured budget policies for a quotation
type PolicyRequest struct {
	Quotation types.Quotation `json:"quotation"`
}

// PolicyResponse carries the evaluation results
type PolicyResponse struct {
	Results []types.PolicyResult `json:"results"`
	Passed  bool                 `json:"passed"`
}

// Policy prices the quotation and evaluates it against the server's policy set
func (d *Deps) Policy(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := quote.Validate(&req.Quotation); err != nil {
		validationError(c, err.Error(), nil)
		return
	}
	if len(d.Policies) == 0 {
		validationError(c, "no policies configured on this server", nil)
		return
	}

	result, err := d.Engine.Estimate(c.Request.Context(), &req.Quotation, "")
	if err != nil {
		internalError(c, "estimation failed: "+err.Error())
		return
	}

	pe := policy.New()
	pe.LoadPolicies(d.Policies)
	results := pe.Evaluate(&result.Estimate, &req.Quotation)

	c.JSON(http.StatusOK, PolicyResponse{
		Results: results,
		Passed:  !pe.HasFailures(results),
	})
}
