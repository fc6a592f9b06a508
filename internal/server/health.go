package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-celestial/internal/ephem"
	"github.com/litescript/ls-celestial/internal/version"
)

type oracleStatus struct {
	Tier      string `json:"tier"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type healthResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Oracles []oracleStatus `json:"oracles"`
}

// healthHandler reports the loaded oracles. A missing refined oracle
// degrades the service but does not make it unhealthy.
func healthHandler(set *ephem.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := healthResponse{Status: "ok", Version: version.Version}
		if set != nil {
			resp.Oracles = []oracleStatus{
				{Tier: "basic", Name: set.Fast.Name(), Available: true},
				{Tier: "secondary", Name: set.Refined.Name(), Available: ephem.IsAvailable(set.Refined)},
				{Tier: "tertiary", Name: set.Transform.Name(), Available: ephem.IsAvailable(set.Transform)},
			}
			for _, o := range resp.Oracles {
				if !o.Available {
					resp.Status = "degraded"
				}
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
