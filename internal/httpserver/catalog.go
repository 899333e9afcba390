package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

type catalogHandlers struct {
	svc *catalog.Service
}

func (h *catalogHandlers) listProducts(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), queryLimit(c))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *catalogHandlers) getProduct(c *gin.Context) {
	product, err := h.svc.ProductByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *catalogHandlers) listCollections(c *gin.Context) {
	collections, err := h.svc.Collections(c.Request.Context(), queryLimit(c))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

func (h *catalogHandlers) getCollection(c *gin.Context) {
	collection, products, err := h.svc.Collection(c.Request.Context(), c.Param("title"), queryLimit(c))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection, "products": products})
}

func (h *catalogHandlers) search(c *gin.Context) {
	results, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	if results == nil {
		results = []catalog.SearchResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func queryLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}

func writeCatalogError(c *gin.Context, err error) {
	var network *domain.NetworkError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &network):
		c.JSON(http.StatusBadGateway, gin.H{"error": "commerce platform unreachable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
