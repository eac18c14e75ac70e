package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(partnerService portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: partnerService}
}

// registerPartnerRoutes sets up the partner delivery routes.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(partnerService)

	deliveries := rg.Group("/deliveries")
	{
		deliveries.POST("", h.addDelivery)
		deliveries.GET("", h.listDeliveries)
		deliveries.POST("/:deliveryID/validate", h.validateDelivery)
		deliveries.POST("/:deliveryID/reject", h.rejectDelivery)
	}
}

// addDelivery godoc
// @Summary Record a partner delivery
// @Description Records a delivery against a partner account. Deliveries start pending and only affect the balance once fully validated.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param delivery body dto.CreateDeliveryRequest true "Delivery"
// @Success 201 {object} dto.DeliveryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deliveries [post]
func (h *partnerHandler) addDelivery(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	delivery, err := h.partnerService.AddDelivery(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDeliveryResponse(delivery))
}

// listDeliveries godoc
// @Summary List deliveries
// @Tags deliveries
// @Produce json
// @Param accountID query string true "Account ID"
// @Success 200 {array} dto.DeliveryResponse
// @Security BearerAuth
// @Router /deliveries [get]
func (h *partnerHandler) listDeliveries(c *gin.Context) {
	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "accountID query parameter is required"})
		return
	}

	deliveries, err := h.partnerService.ListDeliveries(c.Request.Context(), accountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]dto.DeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		resp = append(resp, dto.ToDeliveryResponse(&deliveries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// validateDelivery godoc
// @Summary Validate a delivery
// @Description Marks a delivery fully validated; the partner balance is resynchronized.
// @Tags deliveries
// @Produce json
// @Param deliveryID path string true "Delivery ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deliveries/{deliveryID}/validate [post]
func (h *partnerHandler) validateDelivery(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.partnerService.ValidateDelivery(c.Request.Context(), c.Param("deliveryID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// rejectDelivery godoc
// @Summary Reject a delivery
// @Description Marks a delivery rejected; a previously validated delivery stops counting against the balance.
// @Tags deliveries
// @Produce json
// @Param deliveryID path string true "Delivery ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deliveries/{deliveryID}/reject [post]
func (h *partnerHandler) rejectDelivery(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.partnerService.RejectDelivery(c.Request.Context(), c.Param("deliveryID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
