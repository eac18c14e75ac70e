package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/utils"
)

type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvcFacade
	syncService    portssvc.SyncSvcFacade
	auditService   portssvc.AuditSvcFacade
}

func newAccountHandler(
	accountService portssvc.AccountSvcFacade,
	balanceService portssvc.BalanceSvcFacade,
	syncService portssvc.SyncSvcFacade,
	auditService portssvc.AuditSvcFacade,
) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		balanceService: balanceService,
		syncService:    syncService,
		auditService:   auditService,
	}
}

// registerAccountRoutes sets up the account registry, balance, sync and audit
// routes.
func registerAccountRoutes(
	rg *gin.RouterGroup,
	accountService portssvc.AccountSvcFacade,
	balanceService portssvc.BalanceSvcFacade,
	syncService portssvc.SyncSvcFacade,
	auditService portssvc.AuditSvcFacade,
) {
	h := newAccountHandler(accountService, balanceService, syncService, auditService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.POST("/:accountID/deactivate", h.deactivateAccount)

		accounts.GET("/:accountID/balance", h.getBalance)
		accounts.GET("/:accountID/balance-as-of", h.getBalanceAsOf)
		accounts.GET("/:accountID/activity", h.getActivity)

		accounts.POST("/:accountID/sync", h.syncAccount)
		accounts.POST("/sync-all", h.syncAllAccounts)

		accounts.GET("/:accountID/audit-flux", h.getAuditFlux)
		accounts.GET("/:accountID/verify", h.verifyAccount)
	}
}

// createAccount godoc
// @Summary Create account
// @Description Creates a new account of one of the supported types.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts, active only by default; pass all=true to include deactivated accounts.
// @Tags accounts
// @Produce json
// @Param all query bool false "Include deactivated accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	onlyActive := c.Query("all") != "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), onlyActive)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update account
// @Description Updates descriptive fields. The account type is immutable.
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("accountID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate account
// @Description Soft-deletes an account; its history is preserved.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/deactivate [post]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("accountID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteAccount godoc
// @Summary Delete account
// @Description Hard-deletes an account. Refused once the account has recorded spend.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("accountID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Current derived balance
// @Description Recomputes the account balance from its ledger history.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	accountID := c.Param("accountID")

	balance, err := h.balanceService.ComputeNetBalance(c.Request.Context(), accountID, nil)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:        accountID,
		Balance:          balance,
		BalanceFormatted: utils.FormatFCFA(balance),
	})
}

// getBalanceAsOf godoc
// @Summary Historical balance
// @Description Computes the balance as of the end of the given day.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param date query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/balance-as-of [get]
func (h *accountHandler) getBalanceAsOf(c *gin.Context) {
	accountID := c.Param("accountID")

	date, err := dto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	balance, err := h.balanceService.BalanceAsOf(c.Request.Context(), accountID, date)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:        accountID,
		Balance:          balance,
		BalanceFormatted: utils.FormatFCFA(balance),
		AsOf:             date.Format("2006-01-02"),
	})
}

// getActivity godoc
// @Summary Period activity
// @Description Sums the account movements between two dates, both inclusive.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/activity [get]
func (h *accountHandler) getActivity(c *gin.Context) {
	accountID := c.Param("accountID")

	start, err := dto.ParseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid startDate, expected YYYY-MM-DD"})
		return
	}
	end, err := dto.ParseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid endDate, expected YYYY-MM-DD"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not precede startDate"})
		return
	}

	activity, err := h.balanceService.ActivityInPeriod(c.Request.Context(), accountID, start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ActivityResponse{
		AccountID: accountID,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Activity:  *activity,
	})
}

// syncAccount godoc
// @Summary Synchronize account
// @Description Recomputes and persists the stored balance of one account.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.SyncResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/sync [post]
func (h *accountHandler) syncAccount(c *gin.Context) {
	accountID := c.Param("accountID")

	newBalance, err := h.syncService.SyncAccount(c.Request.Context(), accountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{AccountID: accountID, NewBalance: newBalance})
}

// syncAllAccounts godoc
// @Summary Synchronize all accounts
// @Description Recomputes every account independently; per-account failures are reported, not raised.
// @Tags accounts
// @Produce json
// @Success 200 {object} domain.SyncSummary
// @Security BearerAuth
// @Router /accounts/sync-all [post]
func (h *accountHandler) syncAllAccounts(c *gin.Context) {
	summary := h.syncService.SyncAllAccounts(c.Request.Context())
	c.JSON(http.StatusOK, summary)
}

// getAuditFlux godoc
// @Summary Audit flux sum
// @Description Independent name-joined flux aggregation for cross-checking.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/audit-flux [get]
func (h *accountHandler) getAuditFlux(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sum, err := h.auditService.ComputeAuditFluxSum(c.Request.Context(), account.AccountName)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:        account.AccountID,
		Balance:          sum,
		BalanceFormatted: utils.FormatFCFA(sum),
	})
}

// verifyAccount godoc
// @Summary Verify account consistency
// @Description Compares the stored balance, the derived balance and the audit flux sum.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} domain.ConsistencyReport
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/verify [get]
func (h *accountHandler) verifyAccount(c *gin.Context) {
	report, err := h.auditService.VerifyAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
