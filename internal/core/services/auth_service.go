package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/utils"
	"github.com/matagroup/mata_gestion_app/pkg/config"
)

// AuthService authenticates users and issues access and refresh tokens.
// Refresh tokens are stateless JWTs marked with a "typ" claim so an access
// token can never be replayed as a refresh token.
type AuthService struct {
	BaseService
	cfg          *config.Config
	userSvc      portssvc.UserSvcFacade
	oauth2Config *oauth2.Config
}

func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade) *AuthService {
	return &AuthService{
		cfg:     cfg,
		userSvc: userSvc,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

func (s *AuthService) issueTokens(user *domain.User) (*dto.LoginResponse, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration)
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.UserID,
		"typ": "refresh",
		"iss": s.cfg.JWTIssuer,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.RefreshTokenExpiryDuration).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	}, nil
}

// Login authenticates a username/password pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userSvc.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so usernames cannot be enumerated.
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user account is deactivated", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return s.issueTokens(user)
}

// Refresh validates a refresh token and issues a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrForbidden)
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, fmt.Errorf("%w: token is not a refresh token", apperrors.ErrForbidden)
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: invalid refresh token claims", apperrors.ErrForbidden)
	}

	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user account is deactivated", apperrors.ErrForbidden)
	}

	return s.issueTokens(user)
}

// ExchangeGoogleCode exchanges a Google authorization code, validates the ID
// token and logs the matching user in, creating one on first sign-in.
func (s *AuthService) ExchangeGoogleCode(ctx context.Context, code string) (*dto.LoginResponse, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrConfiguration)
	}

	oauth2Token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, fmt.Errorf("%w: google token response missing id_token", apperrors.ErrForbidden)
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: google ID token has no email claim", apperrors.ErrForbidden)
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrForbidden)
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	user, err := s.userSvc.GetOrCreateFromGoogle(ctx, email, name)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User logged in via Google", slog.String("user_id", user.UserID))
	return s.issueTokens(user)
}
