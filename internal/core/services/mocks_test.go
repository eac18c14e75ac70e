package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
)

// stubTxManager runs the callback with a nil transaction; the services under
// test treat a nil pgx.Tx as "run on the pool".
type stubTxManager struct {
	beginErr error
}

func (s *stubTxManager) WithTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	return fn(nil)
}

var _ portsrepo.TxManager = (*stubTxManager)(nil)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, accountName string) (*domain.Account, error) {
	args := m.Called(ctx, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, onlyActive bool) ([]domain.Account, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) LockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateDerivedTotals(ctx context.Context, tx pgx.Tx, accountID string, balance, credited, spent int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, balance, credited, spent, userID, now)
	return args.Error(0)
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SumCredits(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	args := m.Called(ctx, tx, accountID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) LatestCreditAmount(ctx context.Context, tx pgx.Tx, accountID string, to *time.Time) (int64, bool, error) {
	args := m.Called(ctx, tx, accountID, to)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLedgerRepository) SumExpenses(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	args := m.Called(ctx, tx, accountID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumTransfersIn(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	args := m.Called(ctx, tx, accountID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumTransfersOut(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	args := m.Called(ctx, tx, accountID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumValidatedDeliveries(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	args := m.Called(ctx, tx, accountID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumCreanceBalances(ctx context.Context, tx pgx.Tx, accountID string, to *time.Time) (int64, error) {
	args := m.Called(ctx, tx, accountID, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) AuditFluxTotals(ctx context.Context, accountName string) (*domain.AuditFluxTotals, error) {
	args := m.Called(ctx, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditFluxTotals), args.Error(1)
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	args := m.Called(ctx, tx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	args := m.Called(ctx, tx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, tx pgx.Tx, expenseID string) error {
	args := m.Called(ctx, tx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListExpensesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) DeleteTransfer(ctx context.Context, tx pgx.Tx, transferID string) error {
	args := m.Called(ctx, tx, transferID)
	return args.Error(0)
}

func (m *MockTransferRepository) ListTransfersByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Transfer, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transfer), args.Error(1)
}

var _ portsrepo.TransferRepository = (*MockTransferRepository)(nil)

// --- Mock SettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.FinancialSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateSettings(ctx context.Context, settings domain.FinancialSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

var _ portsrepo.SettingsRepository = (*MockSettingsRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, updatedBy, now)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CashBurnBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) CreanceMovementBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) ValidatedDeliveriesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) LatestStockSoirBetween(ctx context.Context, from, to time.Time) (int64, bool, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// --- Mock CashBictorysRepository ---

type MockCashBictorysRepository struct {
	mock.Mock
}

func (m *MockCashBictorysRepository) UpsertEntry(ctx context.Context, entry domain.CashBictorys) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCashBictorysRepository) ListByMonth(ctx context.Context, monthYear string) ([]domain.CashBictorys, error) {
	args := m.Called(ctx, monthYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBictorys), args.Error(1)
}

func (m *MockCashBictorysRepository) LatestNotAfter(ctx context.Context, monthStart, cutoff time.Time) (*domain.CashBictorys, error) {
	args := m.Called(ctx, monthStart, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBictorys), args.Error(1)
}

var _ portsrepo.CashBictorysRepository = (*MockCashBictorysRepository)(nil)

// --- Mock StockVivantRepository ---

type MockStockVivantRepository struct {
	mock.Mock
}

func (m *MockStockVivantRepository) UpsertEntry(ctx context.Context, entry domain.StockVivant) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockVivantRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.StockVivant, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockVivant), args.Error(1)
}

func (m *MockStockVivantRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockStockVivantRepository) ListByDate(ctx context.Context, dateStock time.Time) ([]domain.StockVivant, error) {
	args := m.Called(ctx, dateStock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockVivant), args.Error(1)
}

func (m *MockStockVivantRepository) DistinctDates(ctx context.Context, limit int) ([]time.Time, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockStockVivantRepository) CopyEntries(ctx context.Context, fromDate, toDate time.Time, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, fromDate, toDate, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockStockVivantRepository) TotalAt(ctx context.Context, dateStock time.Time) (int64, error) {
	args := m.Called(ctx, dateStock)
	return args.Get(0).(int64), args.Error(1)
}

var _ portsrepo.StockVivantRepository = (*MockStockVivantRepository)(nil)

// --- Mock StockSoirRepository ---

type MockStockSoirRepository struct {
	mock.Mock
}

func (m *MockStockSoirRepository) SaveEntry(ctx context.Context, entry domain.StockSoir) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockSoirRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.StockSoir, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockSoir), args.Error(1)
}

var _ portsrepo.StockSoirRepository = (*MockStockSoirRepository)(nil)

// --- Mock CreanceRepository ---

type MockCreanceRepository struct {
	mock.Mock
}

func (m *MockCreanceRepository) SaveClient(ctx context.Context, client domain.CreanceClient) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockCreanceRepository) FindClientByID(ctx context.Context, clientID string) (*domain.CreanceClient, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreanceClient), args.Error(1)
}

func (m *MockCreanceRepository) UpdateClient(ctx context.Context, client domain.CreanceClient) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockCreanceRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	args := m.Called(ctx, clientID, userID, now)
	return args.Error(0)
}

func (m *MockCreanceRepository) ListClientsByAccount(ctx context.Context, accountID string, onlyActive bool) ([]domain.CreanceClient, error) {
	args := m.Called(ctx, accountID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreanceClient), args.Error(1)
}

func (m *MockCreanceRepository) SaveOperation(ctx context.Context, tx pgx.Tx, op domain.CreanceOperation) error {
	args := m.Called(ctx, tx, op)
	return args.Error(0)
}

func (m *MockCreanceRepository) FindOperationByID(ctx context.Context, operationID string) (*domain.CreanceOperation, error) {
	args := m.Called(ctx, operationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreanceOperation), args.Error(1)
}

func (m *MockCreanceRepository) DeleteOperation(ctx context.Context, tx pgx.Tx, operationID string) error {
	args := m.Called(ctx, tx, operationID)
	return args.Error(0)
}

func (m *MockCreanceRepository) ListOperationsByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.CreanceOperation, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreanceOperation), args.Error(1)
}

func (m *MockCreanceRepository) ClientBalances(ctx context.Context, accountID string, to *time.Time) ([]domain.CreanceClientBalance, error) {
	args := m.Called(ctx, accountID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreanceClientBalance), args.Error(1)
}

var _ portsrepo.CreanceRepository = (*MockCreanceRepository)(nil)

// --- Mock balance/sync facades ---

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ComputeNetBalance(ctx context.Context, accountID string, cutoff *time.Time) (int64, error) {
	args := m.Called(ctx, accountID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceService) ComputeNetBalanceInTx(ctx context.Context, tx pgx.Tx, account *domain.Account, cutoff *time.Time) (int64, error) {
	args := m.Called(ctx, tx, account, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceService) BalanceAsOf(ctx context.Context, accountID string, date time.Time) (int64, error) {
	args := m.Called(ctx, accountID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceService) ActivityInPeriod(ctx context.Context, accountID string, start, end time.Time) (*domain.ActivitySummary, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivitySummary), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncAccount(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSyncService) SyncAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) (int64, error) {
	args := m.Called(ctx, tx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSyncService) SyncAllAccounts(ctx context.Context) domain.SyncSummary {
	args := m.Called(ctx)
	return args.Get(0).(domain.SyncSummary)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)
