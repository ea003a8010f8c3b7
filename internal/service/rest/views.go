package rest

import (
	"time"

	"github.com/road23/candleshop/internal/domain"
)

// CandleBasicView — краткая карточка свечи для витрины.
type CandleBasicView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PhotoLink      string `json:"photo_link,omitempty"`
	SellPriceMinor int64  `json:"sell_price_minor"`
}

// CandleFullView — полная карточка свечи вместе с составом и категорией.
type CandleFullView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	PhotoLink       string `json:"photo_link,omitempty"`
	RealCostMinor   int64  `json:"real_cost_minor"`
	SellPriceMinor  int64  `json:"sell_price_minor"`
	HeightCM        int32  `json:"height_cm"`
	BurningTimeMins int32  `json:"burning_time_mins"`
	Category        string `json:"category"`
	WickDiameterCM  int32  `json:"wick_diameter_cm"`
	WaxNeededGram   int32  `json:"wax_needed_gram"`
}

// CategoryView — категория каталога.
type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReceiverView — получатель заказа.
type ReceiverView struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	RepeatCount int32  `json:"repeat_count,omitempty"`
}

// OrderDetailView — одна позиция заказа.
type OrderDetailView struct {
	CandleID int64 `json:"candle_id"`
	Quantity int32 `json:"quantity"`
}

// OrderView — заказ с получателем и позициями. Тип оплаты передаётся
// внешним числовым кодом (0 — наличные, 1 — карта, 2 — перевод).
type OrderView struct {
	ID            int64             `json:"id"`
	CustomerID    *int64            `json:"customer_id,omitempty"`
	OrderDate     time.Time         `json:"order_date"`
	Promocode     string            `json:"promocode,omitempty"`
	TotalSumMinor int64             `json:"total_sum_minor"`
	PaymentCode   int32             `json:"payment_code"`
	IsPaid        bool              `json:"is_paid"`
	Comment       string            `json:"comment,omitempty"`
	Receiver      ReceiverView      `json:"receiver"`
	Details       []OrderDetailView `json:"details"`
}

func candleToBasicView(agg domain.CandleAggregate) CandleBasicView {
	return CandleBasicView{
		ID:             agg.Candle.ID,
		Name:           agg.Candle.Name,
		Description:    agg.Candle.Description,
		PhotoLink:      agg.Candle.PhotoLink,
		SellPriceMinor: agg.Candle.SellPriceMinor,
	}
}

func candleToFullView(agg domain.CandleAggregate) CandleFullView {
	return CandleFullView{
		ID:              agg.Candle.ID,
		Name:            agg.Candle.Name,
		Description:     agg.Candle.Description,
		PhotoLink:       agg.Candle.PhotoLink,
		RealCostMinor:   agg.Candle.RealCostMinor,
		SellPriceMinor:  agg.Candle.SellPriceMinor,
		HeightCM:        agg.Candle.HeightCM,
		BurningTimeMins: agg.Candle.BurningTimeMins,
		Category:        agg.CategoryName,
		WickDiameterCM:  agg.Ingredient.WickDiameterCM,
		WaxNeededGram:   agg.Ingredient.WaxNeededGram,
	}
}

// candleView проецирует агрегат в запрошенное представление.
func candleView(agg domain.CandleAggregate, view string) interface{} {
	if view == viewFull {
		return candleToFullView(agg)
	}
	return candleToBasicView(agg)
}

func candleListView(aggs []domain.CandleAggregate, view string) interface{} {
	if view == viewFull {
		out := make([]CandleFullView, 0, len(aggs))
		for _, agg := range aggs {
			out = append(out, candleToFullView(agg))
		}
		return out
	}
	out := make([]CandleBasicView, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, candleToBasicView(agg))
	}
	return out
}

// candleFromFullView собирает агрегат из полного представления.
// Идентификаторы из тела игнорируются: их источник — путь запроса.
func candleFromFullView(v CandleFullView) domain.CandleAggregate {
	return domain.CandleAggregate{
		Candle: domain.Candle{
			Name:            v.Name,
			Description:     v.Description,
			PhotoLink:       v.PhotoLink,
			RealCostMinor:   v.RealCostMinor,
			SellPriceMinor:  v.SellPriceMinor,
			HeightCM:        v.HeightCM,
			BurningTimeMins: v.BurningTimeMins,
		},
		Ingredient: domain.CandleIngredient{
			WickDiameterCM: v.WickDiameterCM,
			WaxNeededGram:  v.WaxNeededGram,
		},
		CategoryName: v.Category,
	}
}

func categoryToView(c domain.CandleCategory) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name}
}

func categoryListView(cats []domain.CandleCategory) []CategoryView {
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryToView(c))
	}
	return out
}

func orderToView(o domain.Order) OrderView {
	details := make([]OrderDetailView, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, OrderDetailView{CandleID: d.CandleID, Quantity: d.Quantity})
	}
	return OrderView{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		OrderDate:     o.OrderDate,
		Promocode:     o.Promocode,
		TotalSumMinor: o.TotalSumMinor,
		PaymentCode:   o.PaymentType.Code(),
		IsPaid:        o.IsPaid,
		Comment:       o.Comment,
		Receiver: ReceiverView{
			Name:        o.Receiver.Name,
			Phone:       o.Receiver.Phone,
			Address:     o.Receiver.Address,
			RepeatCount: o.Receiver.RepeatCount,
		},
		Details: details,
	}
}

func orderListView(orders []domain.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderToView(o))
	}
	return out
}

// orderFromView собирает доменный заказ из входного представления.
// Некорректный код оплаты оставляет PaymentType пустым: дальше его
// отбросит доменная валидация, «тихого» дефолта нет.
func orderFromView(v OrderView) domain.Order {
	pt, err := domain.PaymentTypeFromCode(v.PaymentCode)
	if err != nil {
		pt = ""
	}
	details := make([]domain.OrderDetail, 0, len(v.Details))
	for _, d := range v.Details {
		details = append(details, domain.OrderDetail{CandleID: d.CandleID, Quantity: d.Quantity})
	}
	return domain.Order{
		ID:            v.ID,
		CustomerID:    v.CustomerID,
		OrderDate:     v.OrderDate,
		Promocode:     v.Promocode,
		TotalSumMinor: v.TotalSumMinor,
		PaymentType:   pt,
		IsPaid:        v.IsPaid,
		Comment:       v.Comment,
		Receiver: domain.Receiver{
			Name:        v.Receiver.Name,
			Phone:       v.Receiver.Phone,
			Address:     v.Receiver.Address,
			RepeatCount: v.Receiver.RepeatCount,
		},
		Details: details,
	}
}
