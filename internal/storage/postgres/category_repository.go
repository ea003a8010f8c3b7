package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/road23/candleshop/internal/domain"
)

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository создаёт PostgreSQL-реализацию CategoryRepository.
func NewCategoryRepository(store *Store) domain.CategoryRepository {
	return &categoryRepository{db: store.db}
}

func (r *categoryRepository) List() ([]domain.CandleCategory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM candle_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.CandleCategory, 0)
	for rows.Next() {
		var c domain.CandleCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Get(id int64) (domain.CandleCategory, error) {
	return r.queryOne(`SELECT id, name FROM candle_categories WHERE id = $1`, id)
}

func (r *categoryRepository) GetByName(name string) (domain.CandleCategory, error) {
	return r.queryOne(`SELECT id, name FROM candle_categories WHERE name = $1`, name)
}

func (r *categoryRepository) ExistsByName(name string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM candle_categories WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check category name: %w", err)
}

func (r *categoryRepository) Create(c domain.CandleCategory) (domain.CandleCategory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO candle_categories (name) VALUES ($1) RETURNING id
	`, c.Name).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.CandleCategory{}, domain.ErrCategoryExists
		}
		return domain.CandleCategory{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (r *categoryRepository) Update(c domain.CandleCategory) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE candle_categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryExists
		}
		return fmt.Errorf("update category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM candle_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) queryOne(query string, arg interface{}) (domain.CandleCategory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var c domain.CandleCategory
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CandleCategory{}, domain.ErrCategoryNotFound
		}
		return domain.CandleCategory{}, fmt.Errorf("select category: %w", err)
	}
	return c, nil
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)
