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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
	"github.com/matagroup/mata_gestion_app/internal/handlers"
	"github.com/matagroup/mata_gestion_app/pkg/config"
)

// --- Mock CashService ---

type MockCashService struct {
	mock.Mock
}

func (m *MockCashService) ComputeTotalCash(ctx context.Context, asOf *time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.CashSvcFacade = (*MockCashService)(nil)

// --- Mock PLService ---

type MockPLService struct {
	mock.Mock
}

func (m *MockPLService) ComputePL(ctx context.Context, month string, snapshotDate time.Time) (*domain.PLResult, error) {
	args := m.Called(ctx, month, snapshotDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PLResult), args.Error(1)
}

var _ portssvc.PLSvcFacade = (*MockPLService)(nil)

// --- Test Suite ---

type DashboardHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCashService *MockCashService
	mockPLService   *MockPLService
	jwtSecret       string
}

func (suite *DashboardHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockCashService = new(MockCashService)
	suite.mockPLService = new(MockPLService)

	cfg := &config.Config{
		JWTSecret:     suite.jwtSecret,
		AuthRateLimit: "20-M",
	}
	services := &portssvc.ServiceContainer{
		Cash: suite.mockCashService,
		PL:   suite.mockPLService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *DashboardHandlerTestSuite) generateTestToken(userID, role string) string {
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

func (suite *DashboardHandlerTestSuite) doRequest(method, url string, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *DashboardHandlerTestSuite) plResult(month string, snapshot time.Time) *domain.PLResult {
	return &domain.PLResult{
		Month:        month,
		SnapshotDate: snapshot,
		PLBrut:       500_000,
		PLFinal:      350_000,
	}
}

// --- Test Cases ---

// Querying a past month without an explicit date snapshots at the month's
// last day instead of today, which would be rejected as outside the month.
func (suite *DashboardHandlerTestSuite) TestGetPL_PastMonthDefaultsToMonthEnd() {
	monthEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.mockPLService.On("ComputePL", mock.Anything, "2025-03",
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(monthEnd) })).
		Return(suite.plResult("2025-03", monthEnd), nil).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/dashboard/pl?month=2025-03", token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.PLResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal("2025-03", body.Month)
	suite.Equal("2025-03-31", body.SnapshotDate)

	suite.mockPLService.AssertExpectations(suite.T())
}

func (suite *DashboardHandlerTestSuite) TestGetPL_ExplicitDateWins() {
	snapshot := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.mockPLService.On("ComputePL", mock.Anything, "2025-03",
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(snapshot) })).
		Return(suite.plResult("2025-03", snapshot), nil).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/dashboard/pl?month=2025-03&date=2025-03-15", token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPLService.AssertExpectations(suite.T())
}

// The current month keeps today as the default snapshot.
func (suite *DashboardHandlerTestSuite) TestGetPL_CurrentMonthDefaultsToToday() {
	now := time.Now()
	month := now.Format("2006-01")
	suite.mockPLService.On("ComputePL", mock.Anything, month,
		mock.MatchedBy(func(d time.Time) bool {
			return d.Year() == now.Year() && d.Month() == now.Month() && d.Day() == now.Day()
		})).
		Return(suite.plResult(month, now), nil).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/dashboard/pl?month="+month, token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPLService.AssertExpectations(suite.T())
}

func (suite *DashboardHandlerTestSuite) TestGetPL_MissingMonth() {
	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/dashboard/pl", token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPLService.AssertNotCalled(suite.T(), "ComputePL", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DashboardHandlerTestSuite) TestGetTotalCash() {
	suite.mockCashService.On("ComputeTotalCash", mock.Anything, (*time.Time)(nil)).
		Return(int64(2_500_000), nil).Once()

	token := suite.generateTestToken("user-1", string(domain.RoleDirecteur))
	w := suite.doRequest(http.MethodGet, "/api/v1/dashboard/total-cash", token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.TotalCashResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal(int64(2_500_000), body.TotalCash)
	suite.NotEmpty(body.TotalCashFormatted)
}

// --- Run Test Suite ---

func TestDashboardHandler(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}
