package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	configuratordomain "github.com/scaroll/pgclosets-core/internal/configurator/domain"
)

// Configure validates and prices a door configuration. Invalid selections
// come back 200 with diagnostics; only malformed requests are rejected.
func (s *Server) Configure(c *gin.Context) {
	var req configuratordomain.ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configuratorSvc.Configure(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
