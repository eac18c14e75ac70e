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
	"github.com/matagroup/mata_gestion_app/internal/utils/accounting"
)

// PartnerService manages partner deliveries. Only fully validated deliveries
// affect the partenaire balance, so validation and rejection re-synchronize
// the account while creation of a pending delivery does not need to.
type PartnerService struct {
	BaseService
	txManager   portsrepo.TxManager
	accountRepo portsrepo.AccountRepository
	partnerRepo portsrepo.PartnerRepository
	syncSvc     portssvc.SyncSvcFacade
}

func NewPartnerService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, partnerRepo portsrepo.PartnerRepository, syncSvc portssvc.SyncSvcFacade) *PartnerService {
	return &PartnerService{
		txManager:   txManager,
		accountRepo: accountRepo,
		partnerRepo: partnerRepo,
		syncSvc:     syncSvc,
	}
}

var _ portssvc.PartnerSvcFacade = (*PartnerService)(nil)

// AddDelivery records a pending delivery against a partenaire account.
// Amount must equal article_count × unit_price.
func (s *PartnerService) AddDelivery(ctx context.Context, req dto.CreateDeliveryRequest, userID string) (*domain.PartnerDelivery, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.AccountType != domain.TypePartenaire {
		return nil, fmt.Errorf("%w: account %s is not a partenaire account", apperrors.ErrValidation, req.AccountID)
	}
	if expected := accounting.LineTotal(req.ArticleCount, req.UnitPrice); req.Amount != expected {
		return nil, fmt.Errorf("%w: delivery amount %d does not match %d articles × %d FCFA = %d",
			apperrors.ErrValidation, req.Amount, req.ArticleCount, req.UnitPrice, expected)
	}
	deliveryDate, err := dto.ParseDate(req.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid delivery date %q", apperrors.ErrValidation, req.DeliveryDate)
	}

	now := time.Now()
	delivery := domain.PartnerDelivery{
		DeliveryID:       uuid.NewString(),
		AccountID:        req.AccountID,
		DeliveryDate:     deliveryDate,
		ArticleCount:     req.ArticleCount,
		UnitPrice:        req.UnitPrice,
		Amount:           req.Amount,
		ValidationStatus: domain.DeliveryPending,
		IsValidated:      false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partnerRepo.SaveDelivery(ctx, nil, delivery); err != nil {
		s.LogError(ctx, err, "Failed to save delivery", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Partner delivery recorded",
		slog.String("delivery_id", delivery.DeliveryID),
		slog.String("account_id", delivery.AccountID),
		slog.Int64("amount", delivery.Amount))
	return &delivery, nil
}

func (s *PartnerService) setStatus(ctx context.Context, deliveryID string, status domain.ValidationStatus, userID string) error {
	delivery, err := s.partnerRepo.FindDeliveryByID(ctx, deliveryID)
	if err != nil {
		return err
	}
	if delivery.ValidationStatus == status {
		return nil
	}

	return s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, delivery.AccountID)
		if err != nil {
			return err
		}
		if err := s.partnerRepo.UpdateDeliveryStatus(ctx, tx, deliveryID, status, userID, time.Now()); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
}

// ValidateDelivery marks a delivery fully validated, making it count against
// the partenaire balance.
func (s *PartnerService) ValidateDelivery(ctx context.Context, deliveryID string, userID string) error {
	if err := s.setStatus(ctx, deliveryID, domain.DeliveryFullyValidated, userID); err != nil {
		s.LogError(ctx, err, "Failed to validate delivery", slog.String("delivery_id", deliveryID))
		return err
	}
	s.LogInfo(ctx, "Partner delivery validated", slog.String("delivery_id", deliveryID))
	return nil
}

// RejectDelivery marks a delivery rejected. Rejected deliveries never affect
// the balance.
func (s *PartnerService) RejectDelivery(ctx context.Context, deliveryID string, userID string) error {
	if err := s.setStatus(ctx, deliveryID, domain.DeliveryRejected, userID); err != nil {
		s.LogError(ctx, err, "Failed to reject delivery", slog.String("delivery_id", deliveryID))
		return err
	}
	s.LogInfo(ctx, "Partner delivery rejected", slog.String("delivery_id", deliveryID))
	return nil
}

// ListDeliveries retrieves the deliveries of a partenaire account.
func (s *PartnerService) ListDeliveries(ctx context.Context, accountID string) ([]domain.PartnerDelivery, error) {
	return s.partnerRepo.ListDeliveriesByAccount(ctx, accountID)
}
