package domain

import "time"

// Candle описывает товарную позицию каталога. Денежные поля хранятся
// в минимальных денежных единицах (копейках).
type Candle struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	PhotoLink   string
	// RealCostMinor — себестоимость свечи.
	RealCostMinor int64
	// SellPriceMinor — отпускная цена.
	SellPriceMinor  int64
	HeightCM        int32
	BurningTimeMins int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CandleCategory группирует свечи по названию. Имя уникально.
type CandleCategory struct {
	ID   int64
	Name string
}

// CandleIngredient — состав свечи. Связь со свечой строго 1:1:
// запись создаётся и удаляется только вместе со свечой.
type CandleIngredient struct {
	ID             int64
	CandleID       int64
	WickDiameterCM int32
	WaxNeededGram  int32
}

// CandleAggregate связывает свечу с её составом и именем категории —
// единица консистентности для операций записи.
type CandleAggregate struct {
	Candle       Candle
	Ingredient   CandleIngredient
	CategoryName string
}

// ValidateInvariants проверяет структурные инварианты свечи и возвращает список замечаний.
func (c *CandleAggregate) ValidateInvariants() []error {
	var errs []error

	if c.Candle.Name == "" {
		errs = append(errs, ErrCandleNameRequired)
	}
	if c.Candle.RealCostMinor < 0 || c.Candle.SellPriceMinor < 0 {
		errs = append(errs, ErrPriceNegative)
	}
	if c.Ingredient.WickDiameterCM <= 0 {
		errs = append(errs, ErrWickDiameterInvalid)
	}
	if c.Ingredient.WaxNeededGram <= 0 {
		errs = append(errs, ErrWaxGramsInvalid)
	}

	return errs
}
