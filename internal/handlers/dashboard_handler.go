package handlers

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/models"

	"github.com/gin-gonic/gin"
)

// Dashboard fans out the six aggregate requests concurrently, the same way
// the view fired them in parallel. A failed aggregate degrades its own tile
// to zero; the page itself never fails.
func Dashboard(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		stats := models.DashboardStats{
			InvoiceCount:      "0",
			CustomerCount:     "0",
			SoldItemCount:     "0",
			TodayRevenue:      "0",
			MonthlyRevenue:    "0",
			TodayRecentOrders: []models.RecentOrder{},
		}

		counts := []struct {
			reqType string
			dst     *string
		}{
			{"invoiceCount", &stats.InvoiceCount},
			{"customerCount", &stats.CustomerCount},
			{"soldItemCount", &stats.SoldItemCount},
			{"todayRevenue", &stats.TodayRevenue},
			{"monthlyRevenue", &stats.MonthlyRevenue},
		}

		var wg sync.WaitGroup
		for _, count := range counts {
			wg.Add(1)
			go func(reqType string, dst *string) {
				defer wg.Done()
				if value, ok := gw.DashboardCount(ctx, reqType); ok {
					*dst = formatCount(value)
				}
			}(count.reqType, count.dst)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if orders := gw.DashboardRecentOrders(ctx); orders != nil {
				stats.TodayRecentOrders = orders
			}
		}()

		wg.Wait()
		c.JSON(http.StatusOK, stats)
	}
}

// formatCount rounds and groups digits: 1234567.8 -> "1,234,568".
func formatCount(value float64) string {
	n := int64(math.Round(value))
	s := strconv.FormatInt(n, 10)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
