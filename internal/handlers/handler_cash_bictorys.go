package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/utils"
)

type cashBictorysHandler struct {
	cashBictorysService portssvc.CashBictorysSvcFacade
}

func newCashBictorysHandler(cashBictorysService portssvc.CashBictorysSvcFacade) *cashBictorysHandler {
	return &cashBictorysHandler{cashBictorysService: cashBictorysService}
}

// registerCashBictorysRoutes sets up the external cash snapshot routes.
func registerCashBictorysRoutes(rg *gin.RouterGroup, cashBictorysService portssvc.CashBictorysSvcFacade) {
	h := newCashBictorysHandler(cashBictorysService)

	cash := rg.Group("/cash-bictorys")
	{
		cash.PUT("", h.upsertEntry)
		cash.GET("", h.listByMonth)
		cash.GET("/latest", h.latestValue)
	}
}

// upsertEntry godoc
// @Summary Upsert a daily cash snapshot
// @Description Inserts or replaces the snapshot for a date. One snapshot per day.
// @Tags cash-bictorys
// @Accept json
// @Produce json
// @Param entry body dto.UpsertCashBictorysRequest true "Snapshot"
// @Success 200 {object} domain.CashBictorys
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-bictorys [put]
func (h *cashBictorysHandler) upsertEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertCashBictorysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.cashBictorysService.UpsertEntry(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// listByMonth godoc
// @Summary List snapshots of a month
// @Tags cash-bictorys
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {array} domain.CashBictorys
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-bictorys [get]
func (h *cashBictorysHandler) listByMonth(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month query parameter is required"})
		return
	}

	entries, err := h.cashBictorysService.ListByMonth(c.Request.Context(), month)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// latestValue godoc
// @Summary Latest snapshot value
// @Description Returns the most recent non-zero snapshot value within a month, up to the cutoff date. Snapshots are point-in-time values, never summed.
// @Tags cash-bictorys
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param date query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.TotalCashResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-bictorys/latest [get]
func (h *cashBictorysHandler) latestValue(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month query parameter is required"})
		return
	}
	cutoff, err := dto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	value, err := h.cashBictorysService.LatestValue(c.Request.Context(), month, cutoff)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TotalCashResponse{
		TotalCash:          value,
		TotalCashFormatted: utils.FormatFCFA(value),
		AsOf:               cutoff.Format("2006-01-02"),
	})
}
