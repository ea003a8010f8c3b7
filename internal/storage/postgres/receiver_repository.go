package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/road23/candleshop/internal/domain"
)

type receiverRepository struct {
	db *sql.DB
}

// NewReceiverRepository создаёт PostgreSQL-реализацию ReceiverRepository.
func NewReceiverRepository(store *Store) domain.ReceiverRepository {
	return &receiverRepository{db: store.db}
}

func (r *receiverRepository) GetByOrder(orderID int64) (domain.Receiver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var rc domain.Receiver
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, name, phone, address, repeat_count
		FROM receivers
		WHERE order_id = $1
	`, orderID).Scan(&rc.ID, &rc.OrderID, &rc.Name, &rc.Phone, &rc.Address, &rc.RepeatCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Receiver{}, domain.ErrReceiverNotFound
		}
		return domain.Receiver{}, fmt.Errorf("select receiver: %w", err)
	}
	return rc, nil
}

// CountByPhone сравнивает телефоны после обрезки окружающих пробелов
// с обеих сторон, как того требует контракт счётчика повторов.
func (r *receiverRepository) CountByPhone(phone string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM receivers WHERE TRIM(phone) = $1
	`, domain.NormalizePhone(phone)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count receivers by phone: %w", err)
	}
	return count, nil
}

func (r *receiverRepository) ListByPhone(phone string) ([]domain.Receiver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, name, phone, address, repeat_count
		FROM receivers
		WHERE TRIM(phone) = $1
		ORDER BY id
	`, domain.NormalizePhone(phone))
	if err != nil {
		return nil, fmt.Errorf("list receivers by phone: %w", err)
	}
	defer rows.Close()

	receivers := make([]domain.Receiver, 0)
	for rows.Next() {
		var rc domain.Receiver
		if err := rows.Scan(&rc.ID, &rc.OrderID, &rc.Name, &rc.Phone, &rc.Address, &rc.RepeatCount); err != nil {
			return nil, fmt.Errorf("scan receiver row: %w", err)
		}
		receivers = append(receivers, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receiver rows: %w", err)
	}
	return receivers, nil
}

func (r *receiverRepository) Create(rc domain.Receiver) (domain.Receiver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO receivers (order_id, name, phone, address, repeat_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rc.OrderID, rc.Name, rc.Phone, rc.Address, rc.RepeatCount).Scan(&rc.ID)
	if err != nil {
		return domain.Receiver{}, fmt.Errorf("insert receiver: %w", err)
	}
	return rc, nil
}

func (r *receiverRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM receivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receiver: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReceiverNotFound
	}
	return nil
}

var _ domain.ReceiverRepository = (*receiverRepository)(nil)
