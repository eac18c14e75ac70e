package services

import (
	"context"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// UserSvcFacade manages application users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetOrCreateFromGoogle(ctx context.Context, email, name string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	DeactivateUser(ctx context.Context, userID string, updatedBy string) error
}

// AuthSvcFacade authenticates users and issues tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// ExchangeGoogleCode exchanges a Google authorization code, validates the
	// ID token, and logs the matching user in (creating one if needed).
	ExchangeGoogleCode(ctx context.Context, code string) (*dto.LoginResponse, error)
}
