package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// PartnerRepository persists partner deliveries.
type PartnerRepository interface {
	SaveDelivery(ctx context.Context, tx pgx.Tx, delivery domain.PartnerDelivery) error
	FindDeliveryByID(ctx context.Context, deliveryID string) (*domain.PartnerDelivery, error)
	UpdateDeliveryStatus(ctx context.Context, tx pgx.Tx, deliveryID string, status domain.ValidationStatus, userID string, now time.Time) error
	ListDeliveriesByAccount(ctx context.Context, accountID string) ([]domain.PartnerDelivery, error)
}

// CreanceRepository persists creance clients and their operations.
type CreanceRepository interface {
	SaveClient(ctx context.Context, client domain.CreanceClient) error
	FindClientByID(ctx context.Context, clientID string) (*domain.CreanceClient, error)
	UpdateClient(ctx context.Context, client domain.CreanceClient) error
	DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error
	ListClientsByAccount(ctx context.Context, accountID string, onlyActive bool) ([]domain.CreanceClient, error)

	SaveOperation(ctx context.Context, tx pgx.Tx, op domain.CreanceOperation) error
	FindOperationByID(ctx context.Context, operationID string) (*domain.CreanceOperation, error)
	DeleteOperation(ctx context.Context, tx pgx.Tx, operationID string) error
	ListOperationsByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.CreanceOperation, error)
	// ClientBalances computes the per-client running balances for an account,
	// operations filtered by operation_date <= to when to is non-nil.
	ClientBalances(ctx context.Context, accountID string, to *time.Time) ([]domain.CreanceClientBalance, error)
}
