package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/core/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade

	userID string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.userID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestCreateAccount() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        " 1000 ",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved := args.Get(1).(domain.Account)
			s.Equal("1000", saved.Code)
			s.True(saved.Balance.IsZero())
			s.True(saved.IsActive)
			s.Equal(s.userID, saved.CreatedBy)
		}).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal("1000", account.Code)
	s.True(account.IsActive)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccountBlankCodeRejected() {
	ctx := context.Background()

	_, err := s.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "   ", Name: "Nameless"}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccountDuplicateCode() {
	ctx := context.Background()

	s.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestListAccountsNormalizesType() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAccounts", ctx, mock.MatchedBy(func(filter portsrepo.ListAccountsFilter) bool {
		return filter.AccountType != nil && *filter.AccountType == domain.Asset
	})).Return([]domain.Account{}, nil).Once()

	_, err := s.service.ListAccounts(ctx, dto.ListAccountsParams{AccountType: "asset"})

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestListAccountsUnknownTypeRejected() {
	ctx := context.Background()

	_, err := s.service.ListAccounts(ctx, dto.ListAccountsParams{AccountType: "PROFIT"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: true}

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, account.AccountID, s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestDeactivateUnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeactivateAccount(ctx, accountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockAccountRepo.AssertNotCalled(s.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
