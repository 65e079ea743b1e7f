package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

// NewStatisticsHandler sets up the routing dependencies for dashboard statistics
func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/statistics", middleware.RequireRole(model.RoleAdmin))
	{
		stats.GET("/dashboard", h.Dashboard)
	}
}

// Dashboard handles GET /statistics/dashboard
// @Summary      Dashboard statistics
// @Description  Tax record counts by effective status, amounts per financial year and complaint counts
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.DashboardStatistics}
// @Failure      500  {object}  response.Response
// @Router       /statistics/dashboard [get]
func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statisticsService.Dashboard(c.Request.Context())
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
