package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type googleOAuthHandler struct {
	authService portssvc.AuthSvcFacade
}

func newGoogleOAuthHandler(authService portssvc.AuthSvcFacade) *googleOAuthHandler {
	return &googleOAuthHandler{authService: authService}
}

// registerGoogleOAuthRoutes sets up the Google sign-in route alongside the
// password-based auth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newGoogleOAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/google/exchange", h.exchangeCode)
	}
}

// exchangeCode godoc
// @Summary Google sign-in
// @Description Exchanges a Google authorization code for an application token pair. Creates the user on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.ExchangeCodeRequest true "Authorization Code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.authService.ExchangeGoogleCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
