package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	quotedomain "github.com/scaroll/pgclosets-core/internal/quote/domain"
	"github.com/scaroll/pgclosets-core/pkg/db/pagination"
)

func (s *Server) CreateQuote(c *gin.Context) {
	var req quotedomain.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.quoteSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetQuote(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))
	resp, err := s.quoteSvc.GetByReference(c.Request.Context(), quotedomain.GetQuoteRequest{
		Reference: reference,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListQuotes(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerEmail string `form:"customer_email"`
		SeriesID      string `form:"series_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.quoteSvc.List(c.Request.Context(), quotedomain.ListQuoteRequest{
		PageToken:     query.PageToken,
		PageSize:      query.PageSize,
		CustomerEmail: strings.TrimSpace(query.CustomerEmail),
		SeriesID:      strings.TrimSpace(query.SeriesID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
