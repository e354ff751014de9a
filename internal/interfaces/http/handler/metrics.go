package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopsync/backend/internal/application/metrics"
)

const defaultLeaderboardLimit = 5

// MetricsHandler exposes the read-only dashboard aggregation endpoints
type MetricsHandler struct {
	BaseHandler
	metricsService *metrics.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metricsService *metrics.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// RegisterRoutes registers the metrics endpoints
func (h *MetricsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/api/metrics")
	{
		group.GET("/overview", h.GetOverview)
		group.GET("/orders/by-date", h.GetOrdersByDate)
		group.GET("/customers/top", h.GetTopCustomers)
		group.GET("/products/top", h.GetTopProducts)
	}
}

// GetOverview handles GET /api/metrics/overview
func (h *MetricsHandler) GetOverview(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	overview, err := h.metricsService.GetOverview(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// GetOrdersByDate handles GET /api/metrics/orders/by-date
func (h *MetricsHandler) GetOrdersByDate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var filter metrics.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	points, err := h.metricsService.GetOrdersByDate(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// GetTopCustomers handles GET /api/metrics/customers/top
func (h *MetricsHandler) GetTopCustomers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	customers, err := h.metricsService.GetTopCustomers(c.Request.Context(), tenantID, leaderboardLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// GetTopProducts handles GET /api/metrics/products/top
func (h *MetricsHandler) GetTopProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	products, err := h.metricsService.GetTopProducts(c.Request.Context(), tenantID, leaderboardLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

func leaderboardLimit(c *gin.Context) int {
	var req struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&req); err != nil || req.Limit == 0 {
		return defaultLeaderboardLimit
	}
	return req.Limit
}
