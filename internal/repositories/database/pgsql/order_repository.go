package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	"github.com/fajarprasetia/smartone-finance/internal/models"
	"github.com/fajarprasetia/smartone-finance/internal/utils/mapping"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for the payment fields of
// production orders.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

// FindOrderByID retrieves an order's payment fields by its ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.ProductionOrder, error) {
	query := `
		SELECT order_id, order_number, customer_name, total_amount, down_payment, settlement_amount,
		       remaining_balance, payment_status, created_at, created_by, last_updated_at, last_updated_by
		FROM production_orders
		WHERE order_id = $1;
	`
	var m models.ProductionOrder
	err := r.Pool.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.OrderNumber,
		&m.CustomerName,
		&m.TotalAmount,
		&m.DownPayment,
		&m.SettlementAmount,
		&m.RemainingBalance,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	order := mapping.ToDomainOrder(m)
	return &order, nil
}

// UpdateOrderPayment writes the order's payment fields.
func (r *PgxOrderRepository) UpdateOrderPayment(ctx context.Context, order domain.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET down_payment = $2, settlement_amount = $3, remaining_balance = $4, payment_status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		order.OrderID,
		order.DownPayment,
		order.SettlementAmount,
		order.RemainingBalance,
		string(order.PaymentStatus),
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment fields of order %s: %w", order.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
