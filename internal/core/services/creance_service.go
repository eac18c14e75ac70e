package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// CreanceService manages the two-level client ledgers under creance accounts.
// Operation and client mutations re-synchronize the owning account because
// its balance is the sum of the per-client balances.
type CreanceService struct {
	BaseService
	txManager   portsrepo.TxManager
	accountRepo portsrepo.AccountRepository
	creanceRepo portsrepo.CreanceRepository
	syncSvc     portssvc.SyncSvcFacade
}

func NewCreanceService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, creanceRepo portsrepo.CreanceRepository, syncSvc portssvc.SyncSvcFacade) *CreanceService {
	return &CreanceService{
		txManager:   txManager,
		accountRepo: accountRepo,
		creanceRepo: creanceRepo,
		syncSvc:     syncSvc,
	}
}

var _ portssvc.CreanceSvcFacade = (*CreanceService)(nil)

// AddClient registers a client ledger under a creance account.
func (s *CreanceService) AddClient(ctx context.Context, req dto.CreateCreanceClientRequest, userID string) (*domain.CreanceClient, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.AccountType != domain.TypeCreance {
		return nil, fmt.Errorf("%w: account %s is not a creance account", apperrors.ErrValidation, req.AccountID)
	}
	if req.InitialCredit < 0 {
		return nil, fmt.Errorf("%w: initial credit must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	client := domain.CreanceClient{
		ClientID:      uuid.NewString(),
		AccountID:     req.AccountID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		InitialCredit: req.InitialCredit,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.creanceRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save creance client", slog.String("account_id", req.AccountID))
		return nil, err
	}
	// A non-zero initial credit changes the account balance immediately.
	if client.InitialCredit != 0 {
		if err := s.resyncAccount(ctx, req.AccountID); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "Creance client added",
		slog.String("client_id", client.ClientID),
		slog.String("account_id", client.AccountID))
	return &client, nil
}

// UpdateClient edits the descriptive fields of a client ledger.
func (s *CreanceService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateCreanceClientRequest, userID string) (*domain.CreanceClient, error) {
	client, err := s.creanceRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		client.ClientName = *req.ClientName
	}
	if req.ClientPhone != nil {
		client.ClientPhone = *req.ClientPhone
	}
	if req.ClientAddress != nil {
		client.ClientAddress = *req.ClientAddress
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = userID

	if err := s.creanceRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update creance client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

// DeactivateClient removes a client from the account balance computation.
func (s *CreanceService) DeactivateClient(ctx context.Context, clientID string, userID string) error {
	client, err := s.creanceRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return err
	}
	if err := s.creanceRepo.DeactivateClient(ctx, clientID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate creance client", slog.String("client_id", clientID))
		return err
	}
	if err := s.resyncAccount(ctx, client.AccountID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Creance client deactivated", slog.String("client_id", clientID))
	return nil
}

// ListClientBalances retrieves the computed per-client balances.
func (s *CreanceService) ListClientBalances(ctx context.Context, accountID string) ([]domain.CreanceClientBalance, error) {
	return s.creanceRepo.ClientBalances(ctx, accountID, nil)
}

// AddOperation records a movement on a client ledger and re-synchronizes the
// owning account in the same transaction.
func (s *CreanceService) AddOperation(ctx context.Context, req dto.CreateCreanceOperationRequest, userID string) (*domain.CreanceOperation, error) {
	client, err := s.creanceRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is deactivated", apperrors.ErrConflict, req.ClientID)
	}
	operationDate, err := dto.ParseDate(req.OperationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid operation date %q", apperrors.ErrValidation, req.OperationDate)
	}

	now := time.Now()
	op := domain.CreanceOperation{
		OperationID:   uuid.NewString(),
		AccountID:     client.AccountID,
		ClientID:      client.ClientID,
		OperationType: req.OperationType,
		Amount:        req.Amount,
		OperationDate: operationDate,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, client.AccountID)
		if err != nil {
			return err
		}
		if err := s.creanceRepo.SaveOperation(ctx, tx, op); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save creance operation", slog.String("client_id", req.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Creance operation recorded",
		slog.String("operation_id", op.OperationID),
		slog.String("client_id", op.ClientID),
		slog.String("type", string(op.OperationType)),
		slog.Int64("amount", op.Amount))
	return &op, nil
}

// DeleteOperation removes a movement and re-synchronizes the owning account.
func (s *CreanceService) DeleteOperation(ctx context.Context, operationID string, userID string) error {
	op, err := s.creanceRepo.FindOperationByID(ctx, operationID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, op.AccountID)
		if err != nil {
			return err
		}
		if err := s.creanceRepo.DeleteOperation(ctx, tx, operationID); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete creance operation", slog.String("operation_id", operationID))
		return err
	}

	s.LogInfo(ctx, "Creance operation deleted",
		slog.String("operation_id", operationID),
		slog.String("deleted_by", userID))
	return nil
}

// ListOperations retrieves a client's operations, newest first.
func (s *CreanceService) ListOperations(ctx context.Context, clientID string, limit, offset int) ([]domain.CreanceOperation, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.creanceRepo.ListOperationsByClient(ctx, clientID, limit, offset)
}

func (s *CreanceService) resyncAccount(ctx context.Context, accountID string) error {
	_, err := s.syncSvc.SyncAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resync creance account", slog.String("account_id", accountID))
	}
	return err
}
