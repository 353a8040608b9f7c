package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	freightdomain "github.com/scaroll/pgclosets-core/internal/freight/domain"
)

func (s *Server) ResolveZone(c *gin.Context) {
	postalCode := strings.TrimSpace(c.Query("postal_code"))
	resp, err := s.freightSvc.ResolveZone(postalCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) EstimateFreight(c *gin.Context) {
	var req freightdomain.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.freightSvc.Estimate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeliveryPromise(c *gin.Context) {
	var query struct {
		PostalCode   string `form:"postal_code"`
		LeadTimeDays int    `form:"lead_time_days"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if query.LeadTimeDays < 0 {
		AbortWithError(c, newValidationError("lead_time_days", "invalid_lead_time", "lead_time_days must not be negative"))
		return
	}

	resp, err := s.freightSvc.DeliveryPromise(c.Request.Context(), strings.TrimSpace(query.PostalCode), query.LeadTimeDays)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PickupLocations(c *gin.Context) {
	postalCode := strings.TrimSpace(c.Query("postal_code"))
	resp, err := s.freightSvc.PickupLocations(postalCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
