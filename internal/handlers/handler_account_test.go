package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/handlers"
	"github.com/matagroup/mata_gestion_app/pkg/config"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByName(ctx context.Context, accountName string) (*domain.Account, error) {
	args := m.Called(ctx, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, onlyActive bool) ([]domain.Account, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock BalanceService ---

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

// --- Mock SyncService ---

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

// --- Mock AuditService ---

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ComputeAuditFluxSum(ctx context.Context, accountName string) (int64, error) {
	args := m.Called(ctx, accountName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditService) VerifyAccount(ctx context.Context, accountID string) (*domain.ConsistencyReport, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsistencyReport), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockBalanceService *MockBalanceService
	mockSyncService    *MockSyncService
	mockAuditService   *MockAuditService
	jwtSecret          string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)
	suite.mockBalanceService = new(MockBalanceService)
	suite.mockSyncService = new(MockSyncService)
	suite.mockAuditService = new(MockAuditService)

	cfg := &config.Config{
		JWTSecret:     suite.jwtSecret,
		AuthRateLimit: "20-M",
	}
	services := &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
		Balance: suite.mockBalanceService,
		Sync:    suite.mockSyncService,
		Audit:   suite.mockAuditService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a signed JWT carrying the claims the auth
// middleware reads.
func (suite *AccountHandlerTestSuite) generateTestToken(userID, role string) string {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		"iat":  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) doRequest(method, url string, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	account := &domain.Account{
		AccountID:      "acc-1",
		AccountName:    "Caisse principale",
		AccountType:    domain.TypeClassique,
		CurrentBalance: 700_000,
		TotalCredited:  1_200_000,
		TotalSpent:     500_000,
		IsActive:       true,
	}
	suite.mockAccountService.On("GetAccountByID", mock.Anything, "acc-1").Return(account, nil).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/acc-1", token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal("acc-1", body.AccountID)
	suite.Equal("Caisse principale", body.AccountName)
	suite.Equal(int64(700_000), body.CurrentBalance)
	suite.NotEmpty(body.CurrentBalanceFmt)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/missing", token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_MissingToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/acc-1", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetBalanceAsOf_UsesQueryDate() {
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.mockBalanceService.On("BalanceAsOf", mock.Anything, "acc-1",
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(expected) })).
		Return(int64(450_000), nil).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/acc-1/balance-as-of?date=2025-01-15", token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.BalanceResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal(int64(450_000), body.Balance)
	suite.Equal("2025-01-15", body.AsOf)

	suite.mockBalanceService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalanceAsOf_RejectsBadDate() {
	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/acc-1/balance-as-of?date=15-01-2025", token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBalanceService.AssertNotCalled(suite.T(), "BalanceAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestSyncAllAccounts_ReportsSummary() {
	summary := domain.SyncSummary{Synchronized: 4, Errors: 1, Messages: []string{"acc-3: lock timeout"}}
	suite.mockSyncService.On("SyncAllAccounts", mock.Anything).Return(summary).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleAdmin))
	w := suite.doRequest(http.MethodPost, "/api/v1/accounts/sync-all", token)

	suite.Equal(http.StatusOK, w.Code)

	var body domain.SyncSummary
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal(4, body.Synchronized)
	suite.Equal(1, body.Errors)
	suite.Len(body.Messages, 1)
}

// --- Run Test Suite ---

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
