package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/core/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalEntryRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	service         portssvc.JournalSvcFacade

	userID         string
	openPeriod     domain.FinancialPeriod
	closedPeriod   domain.FinancialPeriod
	cashAccount    domain.Account
	revenueAccount domain.Account
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockPeriodRepo = new(MockPeriodRepository)
	s.service = services.NewJournalService(s.mockJournalRepo, s.mockAccountRepo, s.mockPeriodRepo)

	s.userID = uuid.NewString()

	s.openPeriod = domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "January 2024",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
	s.closedPeriod = domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "December 2023",
		StartDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodClosed,
	}

	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	s.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Printing Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (s *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		s.cashAccount.AccountID:    s.cashAccount,
		s.revenueAccount.AccountID: s.revenueAccount,
	}
}

func (s *JournalServiceTestSuite) balancedRequest(status *domain.EntryStatus) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    s.openPeriod.PeriodID,
		Description: "Cash sale",
		Status:      status,
		Items: []dto.JournalEntryItemRequest{
			{AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(500)},
			{AccountID: s.revenueAccount.AccountID, Credit: decimal.NewFromInt(500)},
		},
	}
}

func (s *JournalServiceTestSuite) TestCreateEntryPostedAppliesBalanceChanges() {
	ctx := context.Background()
	posted := domain.Posted
	req := s.balancedRequest(&posted)

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{s.cashAccount.AccountID, s.revenueAccount.AccountID}).
		Return(s.accountsMap(), nil).Once()

	var savedChanges map[string]decimal.Decimal
	s.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(domain.Posted, entry.Status)
	s.Len(entry.Items, 2)
	s.Equal("1000", entry.Items[0].AccountCode)

	s.Require().NotNil(savedChanges)
	s.True(savedChanges[s.cashAccount.AccountID].Equal(decimal.NewFromInt(500)))
	s.True(savedChanges[s.revenueAccount.AccountID].Equal(decimal.NewFromInt(500)))

	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateEntryDraftSkipsBalanceChanges() {
	ctx := context.Background()
	req := s.balancedRequest(nil)

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(s.accountsMap(), nil).Once()
	s.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			s.Nil(args.Get(2))
		}).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Draft, entry.Status)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateEntryUnbalancedReportsDifference() {
	ctx := context.Background()
	req := s.balancedRequest(nil)
	req.Items[1].Credit = decimal.NewFromInt(400)

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()

	_, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)

	var unbalanced *apperrors.UnbalancedEntryError
	s.Require().ErrorAs(err, &unbalanced)
	s.True(unbalanced.TotalDebits.Equal(decimal.NewFromInt(500)))
	s.True(unbalanced.TotalCredits.Equal(decimal.NewFromInt(400)))
	s.True(unbalanced.Difference().Equal(decimal.NewFromInt(100)))

	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateEntryOneCentResidualIsBalanced() {
	ctx := context.Background()
	req := s.balancedRequest(nil)
	req.Items[0].Debit = decimal.RequireFromString("100.00")
	req.Items[1].Credit = decimal.RequireFromString("99.99")

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(s.accountsMap(), nil).Once()
	s.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().NoError(err)
}

func (s *JournalServiceTestSuite) TestCreateEntryClosedPeriodRejected() {
	ctx := context.Background()
	req := s.balancedRequest(nil)
	req.PeriodID = s.closedPeriod.PeriodID

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.closedPeriod.PeriodID).Return(&s.closedPeriod, nil).Once()

	_, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPeriodClosed)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateEntrySingleLineRejected() {
	ctx := context.Background()
	req := s.balancedRequest(nil)
	req.Items = req.Items[:1]

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()

	_, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateEntryInactiveAccountRejected() {
	ctx := context.Background()
	req := s.balancedRequest(nil)

	inactive := s.revenueAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		s.cashAccount.AccountID: s.cashAccount,
		inactive.AccountID:      inactive,
	}

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestUpdateEntryPostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:  entryID,
		PeriodID: s.openPeriod.PeriodID,
		Status:   domain.Posted,
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	desc := "edited"
	_, err := s.service.UpdateEntry(ctx, entryID, dto.UpdateJournalEntryRequest{Description: &desc}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostedImmutable)
	s.mockJournalRepo.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestUpdateEntryDraftToPostedAppliesChangesOnce() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:   entryID,
		EntryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PeriodID:  s.openPeriod.PeriodID,
		Status:    domain.Draft,
	}
	items := []domain.JournalEntryItem{
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(200)},
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: s.revenueAccount.AccountID, Credit: decimal.NewFromInt(200)},
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockJournalRepo.On("FindItemsByEntryID", ctx, entryID).Return(items, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(s.accountsMap(), nil).Once()

	s.mockJournalRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), items, mock.AnythingOfType("map[string]decimal.Decimal"), false).
		Run(func(args mock.Arguments) {
			changes := args.Get(3).(map[string]decimal.Decimal)
			s.True(changes[s.cashAccount.AccountID].Equal(decimal.NewFromInt(200)))
			s.True(changes[s.revenueAccount.AccountID].Equal(decimal.NewFromInt(200)))
		}).Return(nil).Once()

	posted := domain.Posted
	updated, err := s.service.UpdateEntry(ctx, entryID, dto.UpdateJournalEntryRequest{Status: &posted}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Posted, updated.Status)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestUpdateEntryLostDraftRaceSurfacesError() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:   entryID,
		EntryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PeriodID:  s.openPeriod.PeriodID,
		Status:    domain.Draft,
	}
	items := []domain.JournalEntryItem{
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(200)},
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: s.revenueAccount.AccountID, Credit: decimal.NewFromInt(200)},
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockJournalRepo.On("FindItemsByEntryID", ctx, entryID).Return(items, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(s.accountsMap(), nil).Once()

	// The entry left DRAFT between the read and the write: the repository's
	// guarded update matches no row and nothing is applied.
	raceErr := fmt.Errorf("%w: entry %s is no longer in DRAFT status", apperrors.ErrValidation, entryID)
	s.mockJournalRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), items, mock.Anything, false).
		Return(raceErr).Once()

	posted := domain.Posted
	_, err := s.service.UpdateEntry(ctx, entryID, dto.UpdateJournalEntryRequest{Status: &posted}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCancelPostedEntryCreatesMirroredReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-20240115-001",
		EntryDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    s.openPeriod.PeriodID,
		Status:      domain.Posted,
	}
	items := []domain.JournalEntryItem{
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: s.cashAccount.AccountID, AccountCode: "1000", Debit: decimal.NewFromInt(500)},
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: s.revenueAccount.AccountID, AccountCode: "4000", Credit: decimal.NewFromInt(500)},
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockJournalRepo.On("FindItemsByEntryID", ctx, entryID).Return(items, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(s.accountsMap(), nil).Once()

	s.mockJournalRepo.On("CancelEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			original := args.Get(1).(domain.JournalEntry)
			reversal := args.Get(2).(*domain.JournalEntry)
			changes := args.Get(3).(map[string]decimal.Decimal)

			s.Equal(domain.Cancelled, original.Status)
			s.Require().NotNil(original.ReversingEntryID)
			s.Equal(reversal.EntryID, *original.ReversingEntryID)

			s.Equal(domain.Posted, reversal.Status)
			s.Require().NotNil(reversal.OriginalEntryID)
			s.Equal(entryID, *reversal.OriginalEntryID)

			// Sides swapped line by line.
			s.True(reversal.Items[0].Credit.Equal(decimal.NewFromInt(500)))
			s.True(reversal.Items[0].Debit.IsZero())
			s.True(reversal.Items[1].Debit.Equal(decimal.NewFromInt(500)))

			// The reversal's deltas exactly negate the original posting.
			s.True(changes[s.cashAccount.AccountID].Equal(decimal.NewFromInt(-500)))
			s.True(changes[s.revenueAccount.AccountID].Equal(decimal.NewFromInt(-500)))
		}).Return(nil).Once()

	cancelled, err := s.service.CancelEntry(ctx, entryID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Cancelled, cancelled.Status)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCancelDraftEntryJustFlipsStatus() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:  entryID,
		PeriodID: s.openPeriod.PeriodID,
		Status:   domain.Draft,
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	s.mockJournalRepo.On("UpdateEntryStatus", ctx, entryID, domain.Cancelled, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := s.service.CancelEntry(ctx, entryID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Cancelled, cancelled.Status)
	s.mockJournalRepo.AssertNotCalled(s.T(), "CancelEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCancelCancelledEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	cancelled := &domain.JournalEntry{
		EntryID:          entryID,
		PeriodID:         s.openPeriod.PeriodID,
		Status:           domain.Cancelled,
		ReversingEntryID: &reversalID,
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(cancelled, nil).Once()

	_, err := s.service.CancelEntry(ctx, entryID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertNotCalled(s.T(), "CancelEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestDeleteEntryPostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:  entryID,
		PeriodID: s.openPeriod.PeriodID,
		Status:   domain.Posted,
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	err := s.service.DeleteEntry(ctx, entryID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostedImmutable)
	s.mockJournalRepo.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestDeleteDraftEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:  entryID,
		PeriodID: s.openPeriod.PeriodID,
		Status:   domain.Draft,
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockJournalRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := s.service.DeleteEntry(ctx, entryID, s.userID)

	s.Require().NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
