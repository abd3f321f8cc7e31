package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
	"github.com/fajarprasetia/smartone-finance/internal/utils/accounting"
)

var (
	ErrOrderFullyPaid = fmt.Errorf("%w: order is already fully paid", apperrors.ErrValidation)
	ErrOverpayment    = fmt.Errorf("%w: payment exceeds the order's remaining balance", apperrors.ErrValidation)
)

// receivableService does accounts-receivable bookkeeping on production
// orders: the first payment is the down payment, every later one settles the
// remainder.
type receivableService struct {
	orderRepo portsrepo.OrderRepositoryFacade
}

// NewReceivableService creates the accounts-receivable adapter service.
func NewReceivableService(orderRepo portsrepo.OrderRepositoryFacade) portssvc.ReceivableSvcFacade {
	return &receivableService{orderRepo: orderRepo}
}

var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// RecordOrderPayment applies a customer payment to an order. Remaining
// balances within the rounding tolerance of zero count as settled.
func (s *receivableService) RecordOrderPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*dto.PaymentResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == domain.Paid {
		return nil, ErrOrderFullyPaid
	}

	remaining := order.TotalAmount.Sub(order.TotalPaid())
	if req.Amount.GreaterThan(remaining.Add(accounting.BalanceTolerance)) {
		return nil, ErrOverpayment
	}

	kind := domain.Settlement
	if order.DownPayment.IsZero() {
		kind = domain.DownPayment
		order.DownPayment = req.Amount
	} else {
		order.SettlementAmount = order.SettlementAmount.Add(req.Amount)
	}

	order.RemainingBalance = order.TotalAmount.Sub(order.TotalPaid())
	if order.RemainingBalance.Abs().LessThanOrEqual(accounting.BalanceTolerance) {
		order.RemainingBalance = decimal.Zero
		order.PaymentStatus = domain.Paid
	} else {
		order.PaymentStatus = domain.PartiallyPaid
	}

	now := time.Now().UTC()
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.orderRepo.UpdateOrderPayment(ctx, *order); err != nil {
		logger.Error("Failed to record order payment",
			slog.String("error", err.Error()),
			slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to record order payment: %w", err)
	}

	logger.Info("Order payment recorded",
		slog.String("order_number", order.OrderNumber),
		slog.String("payment_kind", string(kind)),
		slog.String("payment_status", string(order.PaymentStatus)))

	return &dto.PaymentResultResponse{
		OrderID:       order.OrderID,
		OrderNumber:   order.OrderNumber,
		PaymentKind:   kind,
		AmountPaid:    req.Amount,
		TotalPaid:     order.TotalPaid(),
		Balance:       order.RemainingBalance,
		PaymentStatus: order.PaymentStatus,
	}, nil
}
