package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler sets up the routing dependencies for the service catalog
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/services", h.ListServices)
}

// ListServices handles GET /services
// @Summary      List municipal services
// @Description  Static catalog of services offered by the municipality
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.CatalogEntry}
// @Router       /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.catalogService.ListServices()))
}
