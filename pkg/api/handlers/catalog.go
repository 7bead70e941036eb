package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftquote/quote-engine/pkg/catalog"
)

// CatalogItems lists all cost items
func (d *Deps) CatalogItems(c *gin.Context) {
	items, err := d.Catalog.CostItems(c.Request.Context())
	if err != nil {
		internalError(c, "failed to load cost items: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cost_items": items})
}

// CatalogCategories lists all categories
func (d *Deps) CatalogCategories(c *gin.Context) {
	categories, err := d.Catalog.Categories(c.Request.Context())
	if err != nil {
		internalError(c, "failed to load categories: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CatalogComponentTypes lists all component types
func (d *Deps) CatalogComponentTypes(c *gin.Context) {
	componentTypes, err := d.Catalog.ComponentTypes(c.Request.Context())
	if err != nil {
		internalError(c, "failed to load component types: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"component_types": componentTypes})
}

// CatalogReplacements lists eligible swap targets for a cost item
func (d *Deps) CatalogReplacements(c *gin.Context) {
	id := c.Param("id")

	replacements, err := d.Catalog.Replacements(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			notFound(c, "cost item not found: "+id)
			return
		}
		internalError(c, "failed to load replacements: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"replacements": replacements})
}
