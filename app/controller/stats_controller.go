package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/service"
)

// StatsController handles HTTP requests for the dashboard
type StatsController struct {
	stats service.StatsServiceInterface
}

// NewStatsController creates a new StatsController
func NewStatsController(stats service.StatsServiceInterface) *StatsController {
	return &StatsController{stats: stats}
}

// GetStats handles GET /api/stats
// Example response:
// {
//   "ordersCount": 12,
//   "productsCount": 8,
//   "usersCount": 30,
//   "totalRevenue": 1234567,
//   "totalRevenueFormatted": "₹12,34,567"
// }
func (c *StatsController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Dashboard(r.Context())
	if err != nil {
		log.Errorf("❌ GetStats: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
