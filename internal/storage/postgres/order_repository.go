package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/road23/candleshop/internal/domain"
)

const orderColumns = `
	id, customer_id, order_date, promocode, total_sum_minor,
	payment_type, is_paid, comment, created_at, updated_at
`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// Хранит только строки заказов: получатели и позиции живут в своих репозиториях.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.db}
}

func (r *orderRepository) List() ([]domain.Order, error) {
	return r.queryMany(`SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	return o, nil
}

func (r *orderRepository) ListByCustomer(customerID int64) ([]domain.Order, error) {
	return r.queryMany(`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY id`, customerID)
}

func (r *orderRepository) ListByDate(date time.Time) ([]domain.Order, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	return r.queryMany(
		`SELECT `+orderColumns+` FROM orders WHERE order_date >= $1 AND order_date < $2 ORDER BY id`,
		day, day.Add(24*time.Hour),
	)
}

func (r *orderRepository) ListByMinSum(minMinor int64) ([]domain.Order, error) {
	return r.queryMany(`SELECT `+orderColumns+` FROM orders WHERE total_sum_minor >= $1 ORDER BY id`, minMinor)
}

func (r *orderRepository) ListByMaxSum(maxMinor int64) ([]domain.Order, error) {
	return r.queryMany(`SELECT `+orderColumns+` FROM orders WHERE total_sum_minor <= $1 ORDER BY id`, maxMinor)
}

func (r *orderRepository) Exists(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var found int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = $1`, id).Scan(&found)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check order exists: %w", err)
}

func (r *orderRepository) Create(o domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, order_date, promocode, total_sum_minor,
			payment_type, is_paid, comment, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		o.CustomerID, o.OrderDate, o.Promocode, o.TotalSumMinor,
		string(o.PaymentType), o.IsPaid, o.Comment, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	o.Receiver = domain.Receiver{}
	o.Details = nil
	return o, nil
}

func (r *orderRepository) Update(o domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_id = $1,
		    order_date = $2,
		    promocode = $3,
		    total_sum_minor = $4,
		    payment_type = $5,
		    is_paid = $6,
		    comment = $7,
		    updated_at = $8
		WHERE id = $9
	`,
		o.CustomerID, o.OrderDate, o.Promocode, o.TotalSumMinor,
		string(o.PaymentType), o.IsPaid, o.Comment, time.Now().UTC(), o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) queryMany(query string, args ...interface{}) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o           domain.Order
		customerID  sql.NullInt64
		paymentType string
	)
	if err := row.Scan(
		&o.ID, &customerID, &o.OrderDate, &o.Promocode, &o.TotalSumMinor,
		&paymentType, &o.IsPaid, &o.Comment, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return domain.Order{}, err
	}
	if customerID.Valid {
		o.CustomerID = &customerID.Int64
	}
	o.PaymentType = domain.PaymentType(paymentType)
	return o, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
