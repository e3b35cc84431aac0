package handlers

import (
	"net/http"

	"go-pos-client/internal/config"
	"go-pos-client/internal/utils"

	"github.com/gin-gonic/gin"
)

// SystemStatus reports how this terminal is configured: the backend it talks
// to, whether it runs in debug mode (no backend configured) and its device id.
func SystemStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"apiBaseUrl": cfg.APIBaseURL,
			"debugMode":  cfg.DebugMode(),
			"deviceId":   utils.DeviceID(),
		})
	}
}
