package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	complaintService service.ComplaintService
}

// NewComplaintHandler sets up the routing dependencies for complaint endpoints
func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ComplaintHandler) RegisterRoutes(router *gin.RouterGroup) {
	complaints := router.Group("/complaints")
	{
		// Tracking is public: the code is the credential
		complaints.GET("/track/:code", h.TrackByCode)

		complaints.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleCitizen), h.Submit)
		complaints.GET("/my", middleware.RequireRole(model.RoleAdmin, model.RoleCitizen), h.ListMyComplaints)
	}
}

// Submit handles POST /complaints
// @Summary      Submit complaint
// @Description  Registers a complaint and returns its shareable tracking code
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitComplaintRequest  true  "Complaint Payload"
// @Success      201      {object}  response.Response{data=service.ComplaintResponse}
// @Failure      400      {object}  response.Response
// @Router       /complaints [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	complaint, err := h.complaintService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, complaint))
}

// TrackByCode handles GET /complaints/track/:code
// @Summary      Track complaint
// @Description  Looks up a complaint by its tracking code; no authentication required
// @Tags         complaints
// @Produce      json
// @Param        code  path      string  true  "Tracking code"
// @Success      200   {object}  response.Response{data=service.ComplaintResponse}
// @Failure      404   {object}  response.Response
// @Router       /complaints/track/{code} [get]
func (h *ComplaintHandler) TrackByCode(c *gin.Context) {
	complaint, err := h.complaintService.TrackByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}

// ListMyComplaints handles GET /complaints/my
// @Summary      List own complaints
// @Description  Lists the caller's most recent complaints (bounded page)
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max complaints to return (default 5)"
// @Success      200    {object}  response.Response{data=[]service.ComplaintResponse}
// @Failure      500    {object}  response.Response
// @Router       /complaints/my [get]
func (h *ComplaintHandler) ListMyComplaints(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	complaints, err := h.complaintService.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaints))
}
