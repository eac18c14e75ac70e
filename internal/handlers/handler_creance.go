package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type creanceHandler struct {
	creanceService portssvc.CreanceSvcFacade
}

func newCreanceHandler(creanceService portssvc.CreanceSvcFacade) *creanceHandler {
	return &creanceHandler{creanceService: creanceService}
}

// registerCreanceRoutes sets up the creance client and operation routes.
func registerCreanceRoutes(rg *gin.RouterGroup, creanceService portssvc.CreanceSvcFacade) {
	h := newCreanceHandler(creanceService)

	creance := rg.Group("/creance")
	{
		creance.POST("/clients", h.addClient)
		creance.PUT("/clients/:clientID", h.updateClient)
		creance.POST("/clients/:clientID/deactivate", h.deactivateClient)
		creance.GET("/balances", h.listClientBalances)

		creance.POST("/operations", h.addOperation)
		creance.GET("/operations", h.listOperations)
		creance.DELETE("/operations/:operationID", h.deleteOperation)
	}
}

// addClient godoc
// @Summary Register a creance client
// @Description Registers a client ledger under a creance account, optionally with an initial credit.
// @Tags creance
// @Accept json
// @Produce json
// @Param client body dto.CreateCreanceClientRequest true "Client"
// @Success 201 {object} domain.CreanceClient
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /creance/clients [post]
func (h *creanceHandler) addClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCreanceClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	client, err := h.creanceService.AddClient(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// updateClient godoc
// @Summary Update a creance client
// @Tags creance
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param client body dto.UpdateCreanceClientRequest true "Fields to update"
// @Success 200 {object} domain.CreanceClient
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /creance/clients/{clientID} [put]
func (h *creanceHandler) updateClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCreanceClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	client, err := h.creanceService.UpdateClient(c.Request.Context(), c.Param("clientID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// deactivateClient godoc
// @Summary Deactivate a creance client
// @Description Deactivates a client; its ledger stops counting toward the creance account balance.
// @Tags creance
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /creance/clients/{clientID}/deactivate [post]
func (h *creanceHandler) deactivateClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.creanceService.DeactivateClient(c.Request.Context(), c.Param("clientID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// listClientBalances godoc
// @Summary Per-client balances
// @Description Computes the running balance of every active client of a creance account.
// @Tags creance
// @Produce json
// @Param accountID query string true "Account ID"
// @Success 200 {array} domain.CreanceClientBalance
// @Security BearerAuth
// @Router /creance/balances [get]
func (h *creanceHandler) listClientBalances(c *gin.Context) {
	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "accountID query parameter is required"})
		return
	}

	balances, err := h.creanceService.ListClientBalances(c.Request.Context(), accountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balances)
}

// addOperation godoc
// @Summary Record a client operation
// @Description Records a credit or debit movement on a client ledger; the creance account balance is resynchronized.
// @Tags creance
// @Accept json
// @Produce json
// @Param operation body dto.CreateCreanceOperationRequest true "Operation"
// @Success 201 {object} domain.CreanceOperation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /creance/operations [post]
func (h *creanceHandler) addOperation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCreanceOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	operation, err := h.creanceService.AddOperation(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, operation)
}

// listOperations godoc
// @Summary List client operations
// @Tags creance
// @Produce json
// @Param clientID query string true "Client ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.CreanceOperation
// @Security BearerAuth
// @Router /creance/operations [get]
func (h *creanceHandler) listOperations(c *gin.Context) {
	clientID := c.Query("clientID")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "clientID query parameter is required"})
		return
	}
	limit, offset := parseListParams(c)

	operations, err := h.creanceService.ListOperations(c.Request.Context(), clientID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, operations)
}

// deleteOperation godoc
// @Summary Delete a client operation
// @Description Removes an operation and resynchronizes the creance account balance.
// @Tags creance
// @Produce json
// @Param operationID path string true "Operation ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /creance/operations/{operationID} [delete]
func (h *creanceHandler) deleteOperation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.creanceService.DeleteOperation(c.Request.Context(), c.Param("operationID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
