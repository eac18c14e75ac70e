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

// TransferService moves funds between accounts. Both sides are applied and
// both accounts re-synchronized inside one transaction, so the system-wide
// balance sum never changes.
type TransferService struct {
	BaseService
	txManager    portsrepo.TxManager
	accountRepo  portsrepo.AccountRepository
	transferRepo portsrepo.TransferRepository
	syncSvc      portssvc.SyncSvcFacade
}

func NewTransferService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, transferRepo portsrepo.TransferRepository, syncSvc portssvc.SyncSvcFacade) *TransferService {
	return &TransferService{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		syncSvc:      syncSvc,
	}
}

var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

// lockBoth locks the two account rows in ascending id order. The fixed order
// prevents deadlocks between concurrent opposite transfers.
func (s *TransferService) lockBoth(ctx context.Context, tx pgx.Tx, firstID, secondID string) (first, second *domain.Account, err error) {
	if firstID > secondID {
		second, first, err = s.lockBoth(ctx, tx, secondID, firstID)
		return first, second, err
	}
	first, err = s.accountRepo.LockAccount(ctx, tx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err = s.accountRepo.LockAccount(ctx, tx, secondID)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

// CreateTransfer moves montant from source to destination atomically.
func (s *TransferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.Transfer, error) {
	if req.SourceID == req.DestinationID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	if req.Montant <= 0 {
		return nil, fmt.Errorf("%w: transfer montant must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	transfer := domain.Transfer{
		TransferID:    uuid.NewString(),
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Montant:       req.Montant,
		TransferredBy: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		source, destination, err := s.lockBoth(ctx, tx, req.SourceID, req.DestinationID)
		if err != nil {
			return err
		}
		if source.AccountID != req.SourceID {
			source, destination = destination, source
		}
		if err := s.transferRepo.SaveTransfer(ctx, tx, transfer); err != nil {
			return err
		}
		if _, err := s.syncSvc.SyncAccountInTx(ctx, tx, source); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, destination)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create transfer",
			slog.String("source_id", req.SourceID),
			slog.String("destination_id", req.DestinationID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer created",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("source_id", transfer.SourceID),
		slog.String("destination_id", transfer.DestinationID),
		slog.Int64("montant", transfer.Montant))
	return &transfer, nil
}

// DeleteTransfer removes a transfer and re-synchronizes both accounts.
func (s *TransferService) DeleteTransfer(ctx context.Context, transferID string, userID string) error {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		source, destination, err := s.lockBoth(ctx, tx, transfer.SourceID, transfer.DestinationID)
		if err != nil {
			return err
		}
		if err := s.transferRepo.DeleteTransfer(ctx, tx, transferID); err != nil {
			return err
		}
		if _, err := s.syncSvc.SyncAccountInTx(ctx, tx, source); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, destination)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transfer", slog.String("transfer_id", transferID))
		return err
	}

	s.LogInfo(ctx, "Transfer deleted",
		slog.String("transfer_id", transferID),
		slog.String("deleted_by", userID))
	return nil
}

// ListTransfers retrieves transfers touching an account, newest first.
func (s *TransferService) ListTransfers(ctx context.Context, accountID string, limit, offset int) ([]domain.Transfer, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.transferRepo.ListTransfersByAccount(ctx, accountID, limit, offset)
}
