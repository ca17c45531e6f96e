package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hdcinema/linkstream/tool"
)

// BrandName labels liveness responses and rendered pages.
const BrandName = "HD Cinema"

const probeTimeout = 2 * time.Second

type RootController struct {
	telegramHost string
	omdbHost     string
}

func NewRootController() *RootController {
	return &RootController{
		telegramHost: "api.telegram.org",
		omdbHost:     "www.omdbapi.com",
	}
}

// HandleRoot answers the liveness probe.
// GET /
func (rc *RootController) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "running",
		"rebranded_by": BrandName,
	})
}

// HandleHealth reports reachability of the upstream services.
// GET /health
func (rc *RootController) HandleHealth(c *gin.Context) {
	telegram := tool.QuickPingProbe(rc.telegramHost, probeTimeout)
	omdb := tool.QuickPingProbe(rc.omdbHost, probeTimeout)

	status := "ok"
	if !telegram {
		// OMDb being down only degrades drafts; Telegram down means no media.
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"telegram": telegram,
		"omdb":     omdb,
	})
}
