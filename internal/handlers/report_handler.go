package handlers

import (
	"net/http"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/schemas"

	"github.com/gin-gonic/gin"
)

// TodayReport shows the sales summary for the current day.
func TodayReport(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gw.TodayReport(c.Request.Context())
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to load report")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// RangeReport shows the sales summary between two dates inclusive.
func RangeReport(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form schemas.DateRangeForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Start and end dates are required"})
			return
		}
		if err := form.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := gw.RangeReport(c.Request.Context(), form.StartDate, form.EndDate)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to load report")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
