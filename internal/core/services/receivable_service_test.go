package services_test

import (
	"context"
	"testing"

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

type ReceivableServiceTestSuite struct {
	suite.Suite
	mockOrderRepo *MockOrderRepository
	service       portssvc.ReceivableSvcFacade

	userID string
}

func (s *ReceivableServiceTestSuite) SetupTest() {
	s.mockOrderRepo = new(MockOrderRepository)
	s.service = services.NewReceivableService(s.mockOrderRepo)
	s.userID = uuid.NewString()
}

func (s *ReceivableServiceTestSuite) unpaidOrder(total int64) *domain.ProductionOrder {
	return &domain.ProductionOrder{
		OrderID:          uuid.NewString(),
		OrderNumber:      "ORD-20240105-012",
		CustomerName:     "CV Maju Jaya",
		TotalAmount:      decimal.NewFromInt(total),
		DownPayment:      decimal.Zero,
		SettlementAmount: decimal.Zero,
		RemainingBalance: decimal.NewFromInt(total),
		PaymentStatus:    domain.Unpaid,
	}
}

func (s *ReceivableServiceTestSuite) TestFirstPaymentIsDownPayment() {
	ctx := context.Background()
	order := s.unpaidOrder(1000)

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.mockOrderRepo.On("UpdateOrderPayment", ctx, mock.AnythingOfType("domain.ProductionOrder")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(domain.ProductionOrder)
			s.True(updated.DownPayment.Equal(decimal.NewFromInt(400)))
			s.True(updated.SettlementAmount.IsZero())
			s.Equal(domain.PartiallyPaid, updated.PaymentStatus)
			s.Equal(s.userID, updated.LastUpdatedBy)
		}).Return(nil).Once()

	result, err := s.service.RecordOrderPayment(ctx, order.OrderID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(400)}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.DownPayment, result.PaymentKind)
	s.Equal(domain.PartiallyPaid, result.PaymentStatus)
	s.True(result.TotalPaid.Equal(decimal.NewFromInt(400)))
	s.True(result.Balance.Equal(decimal.NewFromInt(600)))
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *ReceivableServiceTestSuite) TestSecondPaymentIsSettlement() {
	ctx := context.Background()
	order := s.unpaidOrder(1000)
	order.DownPayment = decimal.NewFromInt(400)
	order.RemainingBalance = decimal.NewFromInt(600)
	order.PaymentStatus = domain.PartiallyPaid

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.mockOrderRepo.On("UpdateOrderPayment", ctx, mock.AnythingOfType("domain.ProductionOrder")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(domain.ProductionOrder)
			s.True(updated.DownPayment.Equal(decimal.NewFromInt(400)))
			s.True(updated.SettlementAmount.Equal(decimal.NewFromInt(600)))
			s.True(updated.RemainingBalance.IsZero())
		}).Return(nil).Once()

	result, err := s.service.RecordOrderPayment(ctx, order.OrderID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(600)}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Settlement, result.PaymentKind)
	s.Equal(domain.Paid, result.PaymentStatus)
	s.True(result.Balance.IsZero())
}

func (s *ReceivableServiceTestSuite) TestNearZeroResidualSettles() {
	ctx := context.Background()
	order := s.unpaidOrder(1000)
	order.DownPayment = decimal.NewFromInt(500)
	order.PaymentStatus = domain.PartiallyPaid

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.mockOrderRepo.On("UpdateOrderPayment", ctx, mock.Anything).Return(nil).Once()

	// 0.01 short of the remainder still counts as fully paid.
	result, err := s.service.RecordOrderPayment(ctx, order.OrderID, dto.RecordPaymentRequest{Amount: decimal.RequireFromString("499.99")}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Paid, result.PaymentStatus)
	s.True(result.Balance.IsZero())
}

func (s *ReceivableServiceTestSuite) TestOverpaymentRejected() {
	ctx := context.Background()
	order := s.unpaidOrder(1000)
	order.DownPayment = decimal.NewFromInt(900)
	order.PaymentStatus = domain.PartiallyPaid

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.RecordOrderPayment(ctx, order.OrderID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(200)}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockOrderRepo.AssertNotCalled(s.T(), "UpdateOrderPayment", mock.Anything, mock.Anything)
}

func (s *ReceivableServiceTestSuite) TestFullyPaidOrderRejected() {
	ctx := context.Background()
	order := s.unpaidOrder(1000)
	order.DownPayment = decimal.NewFromInt(1000)
	order.RemainingBalance = decimal.Zero
	order.PaymentStatus = domain.Paid

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.RecordOrderPayment(ctx, order.OrderID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(1)}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReceivableServiceTestSuite) TestNonPositiveAmountRejected() {
	ctx := context.Background()

	_, err := s.service.RecordOrderPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{Amount: decimal.Zero}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockOrderRepo.AssertNotCalled(s.T(), "FindOrderByID", mock.Anything, mock.Anything)
}

func (s *ReceivableServiceTestSuite) TestUnknownOrder() {
	ctx := context.Background()
	orderID := uuid.NewString()

	s.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.RecordOrderPayment(ctx, orderID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10)}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReceivableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
