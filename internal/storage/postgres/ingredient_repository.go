package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/road23/candleshop/internal/domain"
)

type ingredientRepository struct {
	db *sql.DB
}

// NewIngredientRepository создаёт PostgreSQL-реализацию IngredientRepository.
// Уникальный индекс на candle_id гарантирует не более одной записи состава на свечу.
func NewIngredientRepository(store *Store) domain.IngredientRepository {
	return &ingredientRepository{db: store.db}
}

func (r *ingredientRepository) GetByCandle(candleID int64) (domain.CandleIngredient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var i domain.CandleIngredient
	err := r.db.QueryRowContext(ctx, `
		SELECT id, candle_id, wick_diameter_cm, wax_needed_gram
		FROM candle_ingredients
		WHERE candle_id = $1
	`, candleID).Scan(&i.ID, &i.CandleID, &i.WickDiameterCM, &i.WaxNeededGram)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CandleIngredient{}, domain.ErrIngredientNotFound
		}
		return domain.CandleIngredient{}, fmt.Errorf("select ingredient: %w", err)
	}
	return i, nil
}

func (r *ingredientRepository) Create(i domain.CandleIngredient) (domain.CandleIngredient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO candle_ingredients (candle_id, wick_diameter_cm, wax_needed_gram)
		VALUES ($1, $2, $3)
		RETURNING id
	`, i.CandleID, i.WickDiameterCM, i.WaxNeededGram).Scan(&i.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.CandleIngredient{}, domain.ErrCandleExists
		}
		return domain.CandleIngredient{}, fmt.Errorf("insert ingredient: %w", err)
	}
	return i, nil
}

func (r *ingredientRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM candle_ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrIngredientNotFound
	}
	return nil
}

var _ domain.IngredientRepository = (*ingredientRepository)(nil)
