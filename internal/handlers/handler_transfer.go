package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: transferService}
}

// registerTransferRoutes sets up the transfer routes.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("", h.listTransfers)
		transfers.DELETE("/:transferID", h.deleteTransfer)
	}
}

func toTransferResponse(t *domain.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		TransferID:    t.TransferID,
		SourceID:      t.SourceID,
		DestinationID: t.DestinationID,
		Montant:       t.Montant,
		TransferredBy: t.TransferredBy,
		CreatedAt:     t.CreatedAt,
	}
}

// createTransfer godoc
// @Summary Transfer between accounts
// @Description Moves an amount from one account to another; both balances are resynchronized atomically.
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.CreateTransferRequest true "Transfer"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List transfers
// @Description Lists transfers touching the given account, as source or destination.
// @Tags transfers
// @Produce json
// @Param accountID query string true "Account ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.TransferResponse
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "accountID query parameter is required"})
		return
	}
	limit, offset := parseListParams(c)

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]dto.TransferResponse, 0, len(transfers))
	for i := range transfers {
		resp = append(resp, toTransferResponse(&transfers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// deleteTransfer godoc
// @Summary Delete a transfer
// @Description Removes a transfer and resynchronizes both accounts.
// @Tags transfers
// @Produce json
// @Param transferID path string true "Transfer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{transferID} [delete]
func (h *transferHandler) deleteTransfer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.transferService.DeleteTransfer(c.Request.Context(), c.Param("transferID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
