package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/utils"
	"github.com/matagroup/mata_gestion_app/internal/utils/accounting"
)

type dashboardHandler struct {
	cashService portssvc.CashSvcFacade
	plService   portssvc.PLSvcFacade
}

func newDashboardHandler(cashService portssvc.CashSvcFacade, plService portssvc.PLSvcFacade) *dashboardHandler {
	return &dashboardHandler{cashService: cashService, plService: plService}
}

// registerDashboardRoutes sets up the dashboard aggregate routes.
func registerDashboardRoutes(rg *gin.RouterGroup, cashService portssvc.CashSvcFacade, plService portssvc.PLSvcFacade) {
	h := newDashboardHandler(cashService, plService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/total-cash", h.getTotalCash)
		dashboard.GET("/pl", h.getPL)
	}
}

// getTotalCash godoc
// @Summary Cash disponible
// @Description Sums the balances of the cash-bearing account types, optionally as of a past date.
// @Tags dashboard
// @Produce json
// @Param date query string false "Cutoff date (YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.TotalCashResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/total-cash [get]
func (h *dashboardHandler) getTotalCash(c *gin.Context) {
	var asOf *time.Time
	var asOfLabel string
	if raw := c.Query("date"); raw != "" {
		date, err := dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		asOf = &date
		asOfLabel = date.Format("2006-01-02")
	}

	total, err := h.cashService.ComputeTotalCash(c.Request.Context(), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TotalCashResponse{
		TotalCash:          total,
		TotalCashFormatted: utils.FormatFCFA(total),
		AsOf:               asOfLabel,
	})
}

// getPL godoc
// @Summary Monthly profit and loss
// @Description Derives the PL for a month at a snapshot date within that month.
// @Tags dashboard
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param date query string false "Snapshot date (YYYY-MM-DD), defaults to today or to the month's last day for past months"
// @Success 200 {object} dto.PLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/pl [get]
func (h *dashboardHandler) getPL(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month query parameter is required"})
		return
	}

	snapshotDate := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		snapshotDate = parsed
	} else if monthStart, err := time.Parse("2006-01", month); err == nil {
		// Without an explicit date a past month snapshots at its last day;
		// today would fall outside the month and fail validation.
		if _, monthEnd := accounting.MonthBounds(monthStart); monthEnd.Before(snapshotDate) {
			snapshotDate = monthEnd
		}
	}

	result, err := h.plService.ComputePL(c.Request.Context(), month, snapshotDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPLResponse(result))
}
