package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(creditService portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: creditService}
}

// registerCreditRoutes sets up the credit history routes.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("", h.listCredits)
		credits.DELETE("/:creditID", h.deleteCredit)
	}
}

func toCreditResponse(credit *domain.Credit) dto.CreditResponse {
	return dto.CreditResponse{
		CreditID:    credit.CreditID,
		AccountID:   credit.AccountID,
		Amount:      credit.Amount,
		Description: credit.Description,
		CreatedAt:   credit.CreatedAt,
		CreatedBy:   credit.CreatedBy,
	}
}

// parseListParams reads the shared limit/offset query parameters.
func parseListParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// createCredit godoc
// @Summary Credit an account
// @Description Records a credit. A negative amount is a correction entry.
// @Tags credits
// @Accept json
// @Produce json
// @Param credit body dto.CreateCreditRequest true "Credit"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCreditResponse(credit))
}

// listCredits godoc
// @Summary List credits
// @Tags credits
// @Produce json
// @Param accountID query string true "Account ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.CreditResponse
// @Security BearerAuth
// @Router /credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "accountID query parameter is required"})
		return
	}
	limit, offset := parseListParams(c)

	credits, err := h.creditService.ListCredits(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]dto.CreditResponse, 0, len(credits))
	for i := range credits {
		resp = append(resp, toCreditResponse(&credits[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// deleteCredit godoc
// @Summary Delete a credit
// @Description Removes a credit entry and resynchronizes the account balance.
// @Tags credits
// @Produce json
// @Param creditID path string true "Credit ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits/{creditID} [delete]
func (h *creditHandler) deleteCredit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.creditService.DeleteCredit(c.Request.Context(), c.Param("creditID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
