package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
)

func (s *Server) ListSeries(c *gin.Context) {
	var query struct {
		DoorType      string `form:"door_type"`
		MaterialID    string `form:"material_id"`
		FinishID      string `form:"finish_id"`
		MinPriceCents int64  `form:"min_price_cents"`
		MaxPriceCents int64  `form:"max_price_cents"`
		InStockOnly   bool   `form:"in_stock_only"`
		SortBy        string `form:"sort_by"`
		OrderBy       string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.ListSeries(c.Request.Context(), catalogdomain.ListRequest{
		DoorType:      catalogdomain.DoorType(strings.TrimSpace(query.DoorType)),
		MaterialID:    strings.TrimSpace(query.MaterialID),
		FinishID:      strings.TrimSpace(query.FinishID),
		MinPriceCents: query.MinPriceCents,
		MaxPriceCents: query.MaxPriceCents,
		InStockOnly:   query.InStockOnly,
		SortBy:        strings.TrimSpace(query.SortBy),
		OrderBy:       strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSeries(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.GetSeries(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SearchSeries(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		AbortWithError(c, newValidationError("q", "query_required", "search query is required"))
		return
	}

	resp, err := s.catalogSvc.Search(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CatalogStats(c *gin.Context) {
	resp, err := s.catalogSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ResolveSKU(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	resp, err := s.catalogSvc.ResolveSKU(c.Request.Context(), sku)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
