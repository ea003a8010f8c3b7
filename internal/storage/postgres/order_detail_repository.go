package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/road23/candleshop/internal/domain"
)

type orderDetailRepository struct {
	db *sql.DB
}

// NewOrderDetailRepository создаёт PostgreSQL-реализацию OrderDetailRepository.
func NewOrderDetailRepository(store *Store) domain.OrderDetailRepository {
	return &orderDetailRepository{db: store.db}
}

func (r *orderDetailRepository) ListByOrder(orderID int64) ([]domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, candle_id, quantity
		FROM order_details
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()

	details := make([]domain.OrderDetail, 0)
	for rows.Next() {
		var d domain.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.CandleID, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan order detail row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order detail rows: %w", err)
	}
	return details, nil
}

func (r *orderDetailRepository) Create(d domain.OrderDetail) (domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO order_details (order_id, candle_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, d.OrderID, d.CandleID, d.Quantity).Scan(&d.ID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("insert order detail: %w", err)
	}
	return d, nil
}

func (r *orderDetailRepository) DeleteByOrder(orderID int64) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM order_details WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete order details: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

var _ domain.OrderDetailRepository = (*orderDetailRepository)(nil)
