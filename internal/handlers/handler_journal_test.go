package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/handlers"
	"github.com/fajarprasetia/smartone-finance/pkg/config"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodService) FindPeriodContaining(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	mockPeriodService  *MockPeriodService
	jwtSecret          string
	userID             string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockJournalService = new(MockJournalService)
	suite.mockPeriodService = new(MockPeriodService)

	suite.router = gin.New()
	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Journal: suite.mockJournalService,
		Period:  suite.mockPeriodService,
	})
}

// generateTestToken creates a signed JWT accepted by the auth middleware.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "smartone-finance-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    uuid.NewString(),
		Description: "Cash sale",
		Items: []dto.JournalEntryItemRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(500)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(500)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	req := suite.balancedRequest()
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-20240115-001",
		EntryDate:   req.Date,
		PeriodID:    req.PeriodID,
		Description: req.Description,
		Status:      domain.Draft,
	}

	suite.mockJournalService.On("CreateEntry",
		mock.Anything,
		mock.AnythingOfType("dto.CreateJournalEntryRequest"),
		suite.userID,
	).Return(entry, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal("JE-20240115-001", resp.EntryNumber)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Unbalanced() {
	req := suite.balancedRequest()
	req.Items[1].Credit = decimal.NewFromInt(400)

	suite.mockJournalService.On("CreateEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, &apperrors.UnbalancedEntryError{
			TotalDebits:  decimal.NewFromInt(500),
			TotalCredits: decimal.NewFromInt(400),
		}).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var body struct {
		Error   string `json:"error"`
		Details struct {
			TotalDebits  decimal.Decimal `json:"totalDebits"`
			TotalCredits decimal.Decimal `json:"totalCredits"`
			Difference   decimal.Decimal `json:"difference"`
		} `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Journal entry is not balanced", body.Error)
	suite.True(body.Details.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(body.Details.TotalCredits.Equal(decimal.NewFromInt(400)))
	suite.True(body.Details.Difference.Equal(decimal.NewFromInt(100)))
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockJournalService.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestUpdateEntry_PostedImmutable() {
	entryID := uuid.NewString()
	desc := "edited"

	suite.mockJournalService.On("UpdateEntry", mock.Anything, entryID, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrPostedImmutable).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/journal-entries/"+entryID, dto.UpdateJournalEntryRequest{Description: &desc})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_ClosedPeriod() {
	req := suite.balancedRequest()

	suite.mockJournalService.On("CreateEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrPeriodClosed).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_PostedImmutable() {
	entryID := uuid.NewString()

	suite.mockJournalService.On("DeleteEntry", mock.Anything, entryID, suite.userID).
		Return(apperrors.ErrPostedImmutable).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_Success() {
	entryID := uuid.NewString()

	suite.mockJournalService.On("DeleteEntry", mock.Anything, entryID, suite.userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Success)
}

func (suite *JournalHandlerTestSuite) TestCancelEntry_Success() {
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	cancelled := &domain.JournalEntry{
		EntryID:          entryID,
		EntryNumber:      "JE-20240115-001",
		Status:           domain.Cancelled,
		ReversingEntryID: &reversalID,
	}

	suite.mockJournalService.On("CancelEntry", mock.Anything, entryID, suite.userID).
		Return(cancelled, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/cancel", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.Cancelled), string(resp.Status))
	suite.Require().NotNil(resp.ReversingEntryID)
	suite.Equal(reversalID, *resp.ReversingEntryID)
}

func (suite *JournalHandlerTestSuite) TestListEntries_IncludesFilters() {
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), EntryNumber: "JE-20240110-001", Status: domain.Posted},
	}
	periods := []domain.FinancialPeriod{
		{PeriodID: uuid.NewString(), Name: "January 2024", Status: domain.PeriodOpen},
	}

	suite.mockJournalService.On("ListEntries", mock.Anything, mock.AnythingOfType("dto.ListJournalEntriesParams")).
		Return(entries, int64(1), nil).Once()
	suite.mockPeriodService.On("ListPeriods", mock.Anything).Return(periods, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries?page=1&pageSize=20", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Equal(int64(1), resp.Pagination.TotalCount)
	suite.Len(resp.Filters.Periods, 1)
	suite.Contains(resp.Filters.Statuses, string(domain.Posted))
	suite.mockPeriodService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
