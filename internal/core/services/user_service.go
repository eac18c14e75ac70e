package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/utils"
)

// UserService manages application users.
type UserService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

func NewUserService(userRepo portsrepo.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves a user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// GetOrCreateFromGoogle finds the user matching a verified Google email,
// creating a directeur account on first sign-in.
func (s *UserService) GetOrCreateFromGoogle(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if !user.IsActive {
			return nil, fmt.Errorf("%w: user account is deactivated", apperrors.ErrForbidden)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	username := strings.Split(email, "@")[0]
	newUser := domain.User{
		UserID:   uuid.NewString(),
		Username: username,
		Name:     name,
		Email:    email,
		Role:     domain.RoleDirecteur,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system:google-signin",
			LastUpdatedAt: now,
			LastUpdatedBy: "system:google-signin",
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		// A username collision is possible when two addresses share a local
		// part; retry once with a uniquified username.
		if errors.Is(err, apperrors.ErrDuplicate) {
			newUser.Username = username + "-" + newUser.UserID[:8]
			if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	s.LogInfo(ctx, "User created from Google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// ListUsers retrieves users ordered by username.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// DeactivateUser soft-deletes a user.
func (s *UserService) DeactivateUser(ctx context.Context, userID string, updatedBy string) error {
	if err := s.userRepo.DeactivateUser(ctx, userID, updatedBy, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deactivated", slog.String("user_id", userID))
	return nil
}
