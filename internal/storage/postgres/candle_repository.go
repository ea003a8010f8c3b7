package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/road23/candleshop/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

const candleColumns = `
	id, category_id, name, description, photo_link,
	real_cost_minor, sell_price_minor, height_cm, burning_time_mins,
	created_at, updated_at
`

type candleRepository struct {
	db *sql.DB
}

// NewCandleRepository создаёт PostgreSQL-реализацию CandleRepository.
func NewCandleRepository(store *Store) domain.CandleRepository {
	return &candleRepository{db: store.db}
}

func (r *candleRepository) List() ([]domain.Candle, error) {
	return r.queryMany(`SELECT `+candleColumns+` FROM candles ORDER BY id`, nil)
}

func (r *candleRepository) Get(id int64) (domain.Candle, error) {
	return r.queryOne(`SELECT `+candleColumns+` FROM candles WHERE id = $1`, id)
}

func (r *candleRepository) GetByName(name string) (domain.Candle, error) {
	return r.queryOne(`SELECT `+candleColumns+` FROM candles WHERE name = $1`, name)
}

func (r *candleRepository) ListByCategory(categoryID int64) ([]domain.Candle, error) {
	return r.queryMany(`SELECT `+candleColumns+` FROM candles WHERE category_id = $1 ORDER BY id`, []interface{}{categoryID})
}

func (r *candleRepository) ExistsByName(name string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM candles WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check candle name: %w", err)
}

func (r *candleRepository) Create(c domain.Candle) (domain.Candle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO candles (
			category_id, name, description, photo_link,
			real_cost_minor, sell_price_minor, height_cm, burning_time_mins,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		c.CategoryID, c.Name, c.Description, c.PhotoLink,
		c.RealCostMinor, c.SellPriceMinor, c.HeightCM, c.BurningTimeMins,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Candle{}, domain.ErrCandleExists
		}
		return domain.Candle{}, fmt.Errorf("insert candle: %w", err)
	}

	return c, nil
}

func (r *candleRepository) Update(c domain.Candle) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE candles
		SET category_id = $1,
		    name = $2,
		    description = $3,
		    photo_link = $4,
		    real_cost_minor = $5,
		    sell_price_minor = $6,
		    height_cm = $7,
		    burning_time_mins = $8,
		    updated_at = $9
		WHERE id = $10
	`,
		c.CategoryID, c.Name, c.Description, c.PhotoLink,
		c.RealCostMinor, c.SellPriceMinor, c.HeightCM, c.BurningTimeMins,
		time.Now().UTC(), c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCandleExists
		}
		return fmt.Errorf("update candle: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCandleNotFound
	}
	return nil
}

func (r *candleRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM candles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCandleNotFound
	}
	return nil
}

func (r *candleRepository) queryOne(query string, arg interface{}) (domain.Candle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var c domain.Candle
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.CategoryID, &c.Name, &c.Description, &c.PhotoLink,
		&c.RealCostMinor, &c.SellPriceMinor, &c.HeightCM, &c.BurningTimeMins,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Candle{}, domain.ErrCandleNotFound
		}
		return domain.Candle{}, fmt.Errorf("select candle: %w", err)
	}
	return c, nil
}

func (r *candleRepository) queryMany(query string, args []interface{}) ([]domain.Candle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candles: %w", err)
	}
	defer rows.Close()

	candles := make([]domain.Candle, 0)
	for rows.Next() {
		var c domain.Candle
		if err := rows.Scan(
			&c.ID, &c.CategoryID, &c.Name, &c.Description, &c.PhotoLink,
			&c.RealCostMinor, &c.SellPriceMinor, &c.HeightCM, &c.BurningTimeMins,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan candle row: %w", err)
		}
		candles = append(candles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candle rows: %w", err)
	}
	return candles, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.CandleRepository = (*candleRepository)(nil)
