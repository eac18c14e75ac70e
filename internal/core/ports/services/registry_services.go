package services

import (
	"context"
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// AccountSvcFacade manages the account registry.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByName(ctx context.Context, accountName string) (*domain.Account, error)
	ListAccounts(ctx context.Context, onlyActive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
	// DeleteAccount hard-deletes; only permitted when total_spent == 0.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}

// PartnerSvcFacade manages partner deliveries.
type PartnerSvcFacade interface {
	AddDelivery(ctx context.Context, req dto.CreateDeliveryRequest, userID string) (*domain.PartnerDelivery, error)
	ValidateDelivery(ctx context.Context, deliveryID string, userID string) error
	RejectDelivery(ctx context.Context, deliveryID string, userID string) error
	ListDeliveries(ctx context.Context, accountID string) ([]domain.PartnerDelivery, error)
}

// CreanceSvcFacade manages creance client ledgers and operations.
type CreanceSvcFacade interface {
	AddClient(ctx context.Context, req dto.CreateCreanceClientRequest, userID string) (*domain.CreanceClient, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateCreanceClientRequest, userID string) (*domain.CreanceClient, error)
	DeactivateClient(ctx context.Context, clientID string, userID string) error
	ListClientBalances(ctx context.Context, accountID string) ([]domain.CreanceClientBalance, error)
	AddOperation(ctx context.Context, req dto.CreateCreanceOperationRequest, userID string) (*domain.CreanceOperation, error)
	DeleteOperation(ctx context.Context, operationID string, userID string) error
	ListOperations(ctx context.Context, clientID string, limit, offset int) ([]domain.CreanceOperation, error)
}

// StockVivantSvcFacade manages inventory valuation snapshots.
type StockVivantSvcFacade interface {
	UpsertEntry(ctx context.Context, req dto.UpsertStockVivantRequest, userID string) (*domain.StockVivant, error)
	DeleteEntry(ctx context.Context, entryID string, userID string) error
	ListByDate(ctx context.Context, dateStock time.Time) ([]domain.StockVivant, error)
	CopyFromDate(ctx context.Context, req dto.CopyStockVivantRequest, userID string) (int, error)
}

// StockSoirSvcFacade manages the evening point-of-sale stock snapshots the
// PL calculator reads.
type StockSoirSvcFacade interface {
	AddEntry(ctx context.Context, req dto.CreateStockSoirRequest, userID string) (*domain.StockSoir, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.StockSoir, error)
}

// CashBictorysSvcFacade manages the daily external cash snapshots.
type CashBictorysSvcFacade interface {
	UpsertEntry(ctx context.Context, req dto.UpsertCashBictorysRequest, userID string) (*domain.CashBictorys, error)
	ListByMonth(ctx context.Context, monthYear string) ([]domain.CashBictorys, error)
	// LatestValue is the latest-not-after lookup within a month; never a sum.
	LatestValue(ctx context.Context, month string, cutoff time.Time) (int64, error)
}

// SettingsSvcFacade reads and edits the financial settings.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.FinancialSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.FinancialSettings, error)
}
