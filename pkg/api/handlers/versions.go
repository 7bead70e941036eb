package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

// SaveVersionRequest persists a quotation tree with free-text notes
type SaveVersionRequest struct {
	Quotation types.Quotation `json:"quotation"`
	Notes     string          `json:"notes"`
}

// SaveVersion stores a new version record for a quotation
func (d *Deps) SaveVersion(c *gin.Context) {
	if d.Versions == nil {
		writeError(c, "NO_DATABASE", "version persistence requires a configured database", http.StatusServiceUnavailable, nil)
		return
	}

	var req SaveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := quote.Validate(&req.Quotation); err != nil {
		validationError(c, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	result, err := d.Engine.Estimate(ctx, &req.Quotation, "")
	if err != nil {
		internalError(c, "estimation failed: "+err.Error())
		return
	}

	v, err := d.Versions.Save(ctx, &req.Quotation, req.Notes, result.Estimate.Total.StringFixed(2))
	if err != nil {
		internalError(c, "failed to save version: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"version": v})
}

// ListVersions lists saved versions of a quotation, newest first
func (d *Deps) ListVersions(c *gin.Context) {
	if d.Versions == nil {
		writeError(c, "NO_DATABASE", "version persistence requires a configured database", http.StatusServiceUnavailable, nil)
		return
	}

	list, err := d.Versions.List(c.Request.Context(), c.Param("quotationID"))
	if err != nil {
		internalError(c, "failed to list versions: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": list})
}
