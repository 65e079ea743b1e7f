package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaxHandler struct {
	taxService service.TaxService
}

// NewTaxHandler sets up the routing dependencies for tax ledger endpoints
func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	records := router.Group("/tax-records")
	{
		// Citizen self-service
		records.GET("/my", middleware.RequireRole(model.RoleAdmin, model.RoleCitizen), h.ListMyRecords)
		records.POST("/:id/pay", middleware.RequireRole(model.RoleAdmin, model.RoleCitizen), h.PayRecord)

		// Admin ledger management
		records.GET("", middleware.RequireRole(model.RoleAdmin), h.ListAll)
		records.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateRecord)
		records.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateRecord)
		records.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteRecord)
		records.POST("/:id/mark-paid", middleware.RequireRole(model.RoleAdmin), h.MarkPaid)
	}
}

// CreateRecord handles POST /tax-records
// @Summary      Create tax record
// @Description  Creates a pending tax record for an eligible user
// @Tags         tax-records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateTaxRecordRequest  true  "Create Tax Record Payload"
// @Success      201      {object}  response.Response{data=service.TaxRecordResponse}
// @Failure      400      {object}  response.Response
// @Router       /tax-records [post]
func (h *TaxHandler) CreateRecord(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.CreateTaxRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.taxService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// UpdateRecord handles PUT /tax-records/:id
// @Summary      Update tax record
// @Description  Updates a tax record's mutable fields; id and creation time are immutable
// @Tags         tax-records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Record ID"
// @Param        payload  body      service.UpdateTaxRecordRequest  true  "Update Tax Record Payload"
// @Success      200      {object}  response.Response{data=service.TaxRecordResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /tax-records/{id} [put]
func (h *TaxHandler) UpdateRecord(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid record id"))
		return
	}

	var req service.UpdateTaxRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	record, err := h.taxService.Update(c.Request.Context(), actorID, recordID, req)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// DeleteRecord handles DELETE /tax-records/:id
// @Summary      Delete tax record
// @Description  Permanently removes a tax record; the UI confirms before calling
// @Tags         tax-records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /tax-records/{id} [delete]
func (h *TaxHandler) DeleteRecord(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid record id"))
		return
	}

	if err := h.taxService.Delete(c.Request.Context(), actorID, recordID); err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Tax record deleted successfully"))
}

// MarkPaid handles POST /tax-records/:id/mark-paid
// @Summary      Mark tax record paid
// @Description  Sets status to paid with today's date; idempotent when already paid
// @Tags         tax-records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response{data=service.TaxRecordResponse}
// @Failure      404  {object}  response.Response
// @Router       /tax-records/{id}/mark-paid [post]
func (h *TaxHandler) MarkPaid(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid record id"))
		return
	}

	record, err := h.taxService.MarkPaid(c.Request.Context(), actorID, recordID)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// PayRecord handles POST /tax-records/:id/pay — citizen self-service payment
// @Summary      Pay own tax record
// @Description  Marks one of the caller's own records as paid (simulated payment)
// @Tags         tax-records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response{data=service.TaxRecordResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /tax-records/{id}/pay [post]
func (h *TaxHandler) PayRecord(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid record id"))
		return
	}

	record, err := h.taxService.PayAsOwner(c.Request.Context(), callerID, recordID)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// ListMyRecords handles GET /tax-records/my
// @Summary      List own tax records
// @Description  Lists the caller's tax records, most recent first, with overdue derived from due dates
// @Tags         tax-records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.TaxRecordResponse}
// @Failure      500  {object}  response.Response
// @Router       /tax-records/my [get]
func (h *TaxHandler) ListMyRecords(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	records, err := h.taxService.ListForUser(c.Request.Context(), callerID)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// ListAll handles GET /tax-records with pagination and search
// @Summary      List all tax records
// @Description  Paginated ledger with substring search over property, tax type, payer name and Aadhaar
// @Tags         tax-records
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Param        q      query     string  false  "Search query"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /tax-records [get]
func (h *TaxHandler) ListAll(c *gin.Context) {
	params := pagination.Parse(c)
	query := c.Query("q")

	records, total, err := h.taxService.ListAll(c.Request.Context(), params.Page, params.Limit, query)
	if err != nil {
		status, res := response.FromError(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}
