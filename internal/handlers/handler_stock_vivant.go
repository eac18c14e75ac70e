package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type stockVivantHandler struct {
	stockService portssvc.StockVivantSvcFacade
}

func newStockVivantHandler(stockService portssvc.StockVivantSvcFacade) *stockVivantHandler {
	return &stockVivantHandler{stockService: stockService}
}

// registerStockVivantRoutes sets up the stock vivant routes.
func registerStockVivantRoutes(rg *gin.RouterGroup, stockService portssvc.StockVivantSvcFacade) {
	h := newStockVivantHandler(stockService)

	stock := rg.Group("/stock-vivant")
	{
		stock.PUT("", h.upsertEntry)
		stock.GET("", h.listByDate)
		stock.POST("/copy", h.copyFromDate)
		stock.DELETE("/:entryID", h.deleteEntry)
	}
}

// upsertEntry godoc
// @Summary Upsert a stock line
// @Description Inserts or replaces the line keyed by (date, categorie, produit). Total defaults to quantite times prix unitaire.
// @Tags stock-vivant
// @Accept json
// @Produce json
// @Param entry body dto.UpsertStockVivantRequest true "Stock line"
// @Success 200 {object} domain.StockVivant
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-vivant [put]
func (h *stockVivantHandler) upsertEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertStockVivantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.stockService.UpsertEntry(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// listByDate godoc
// @Summary List stock lines for a date
// @Tags stock-vivant
// @Produce json
// @Param date query string true "Stock date (YYYY-MM-DD)"
// @Success 200 {array} domain.StockVivant
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-vivant [get]
func (h *stockVivantHandler) listByDate(c *gin.Context) {
	date, err := dto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	entries, err := h.stockService.ListByDate(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// copyFromDate godoc
// @Summary Copy stock lines between dates
// @Description Duplicates every line of the source date under the target date, replacing existing target lines.
// @Tags stock-vivant
// @Accept json
// @Produce json
// @Param copy body dto.CopyStockVivantRequest true "Source and target dates"
// @Success 200 {object} map[string]int
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-vivant/copy [post]
func (h *stockVivantHandler) copyFromDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CopyStockVivantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	copied, err := h.stockService.CopyFromDate(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"copied": copied})
}

// deleteEntry godoc
// @Summary Delete a stock line
// @Tags stock-vivant
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-vivant/{entryID} [delete]
func (h *stockVivantHandler) deleteEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.stockService.DeleteEntry(c.Request.Context(), c.Param("entryID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
