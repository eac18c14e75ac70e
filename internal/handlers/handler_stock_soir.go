package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type stockSoirHandler struct {
	stockSoirService portssvc.StockSoirSvcFacade
}

func newStockSoirHandler(stockSoirService portssvc.StockSoirSvcFacade) *stockSoirHandler {
	return &stockSoirHandler{stockSoirService: stockSoirService}
}

// registerStockSoirRoutes sets up the evening stock snapshot routes.
func registerStockSoirRoutes(rg *gin.RouterGroup, stockSoirService portssvc.StockSoirSvcFacade) {
	h := newStockSoirHandler(stockSoirService)

	stock := rg.Group("/stock-soir")
	{
		stock.POST("", h.addEntry)
		stock.GET("", h.listBetween)
	}
}

// addEntry godoc
// @Summary Record an evening stock snapshot
// @Description Records the end-of-day stock value of one point of sale. One snapshot per point of sale and date.
// @Tags stock-soir
// @Accept json
// @Produce json
// @Param entry body dto.CreateStockSoirRequest true "Snapshot"
// @Success 201 {object} domain.StockSoir
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-soir [post]
func (h *stockSoirHandler) addEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStockSoirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.stockSoirService.AddEntry(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// listBetween godoc
// @Summary List snapshots of a date range
// @Tags stock-soir
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.StockSoir
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-soir [get]
func (h *stockSoirHandler) listBetween(c *gin.Context) {
	from, err := dto.ParseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid startDate, expected YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid endDate, expected YYYY-MM-DD"})
		return
	}

	entries, err := h.stockSoirService.ListBetween(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
