package orchestrator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/candle"
	"github.com/road23/candleshop/internal/service/orchestrator"
	"github.com/road23/candleshop/internal/service/order"
	"github.com/road23/candleshop/internal/service/repeat"
	"github.com/road23/candleshop/internal/storage/memory"
)

func newOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()

	candles := memory.NewCandleRepository()
	categories := memory.NewCategoryRepository()
	ingredients := memory.NewIngredientRepository()
	orders := memory.NewOrderRepository()
	receivers := memory.NewReceiverRepository()
	details := memory.NewOrderDetailRepository()

	candleMgr := candle.NewManager(candles, categories, ingredients, nil)
	orderMgr := order.NewManager(orders, receivers, details, repeat.NewCounter(receivers), nil)

	return orchestrator.NewOrchestratorWithoutMetrics(candleMgr, orderMgr, candles, categories, nil)
}

func candlePayload(name string) domain.CandleAggregate {
	return domain.CandleAggregate{
		Candle: domain.Candle{
			Name:            name,
			RealCostMinor:   10000,
			SellPriceMinor:  25000,
			HeightCM:        10,
			BurningTimeMins: 300,
		},
		Ingredient: domain.CandleIngredient{WickDiameterCM: 1, WaxNeededGram: 180},
	}
}

func orderPayload(candleID int64) domain.Order {
	return domain.Order{
		TotalSumMinor: 150000,
		PaymentType:   domain.PaymentCard,
		Receiver:      domain.Receiver{Name: "Анна", Phone: "+7 900 123 45 67"},
		Details:       []domain.OrderDetail{{CandleID: candleID, Quantity: 2}},
	}
}

func mustCreateCategory(t *testing.T, orc *orchestrator.Orchestrator, name string) domain.CandleCategory {
	t.Helper()
	res := orc.CreateCategory(name)
	require.Equal(t, orchestrator.KindOK, res.Kind)
	return res.Payload.(domain.CandleCategory)
}

func mustCreateCandle(t *testing.T, orc *orchestrator.Orchestrator, categoryID int64, name string) domain.CandleAggregate {
	t.Helper()
	res := orc.CreateCandle(categoryID, candlePayload(name))
	require.Equal(t, orchestrator.KindOK, res.Kind)
	return res.Payload.(domain.CandleAggregate)
}

func TestCreateCandle_DuplicateNameConflict(t *testing.T) {
	orc := newOrchestrator(t)
	category := mustCreateCategory(t, orc, "Ароматические")

	mustCreateCandle(t, orc, category.ID, "Лавандовый сон")

	res := orc.CreateCandle(category.ID, candlePayload("Лавандовый сон"))
	require.Equal(t, orchestrator.KindConflict, res.Kind)
	require.NotEmpty(t, res.Messages)
}

func TestCreateCandle_ValidationFailed(t *testing.T) {
	orc := newOrchestrator(t)
	category := mustCreateCategory(t, orc, "Ароматические")

	bad := candlePayload("")
	bad.Ingredient.WaxNeededGram = 0
	res := orc.CreateCandle(category.ID, bad)
	require.Equal(t, orchestrator.KindValidationFailed, res.Kind)
	require.Len(t, res.Messages, 2)
}

func TestCreateCandle_UnknownCategoryNotFound(t *testing.T) {
	orc := newOrchestrator(t)

	res := orc.CreateCandle(99, candlePayload("Цитрус"))
	require.Equal(t, orchestrator.KindNotFound, res.Kind)
}

func TestCandleByID_NotFound(t *testing.T) {
	orc := newOrchestrator(t)

	res := orc.CandleByID(404)
	require.Equal(t, orchestrator.KindNotFound, res.Kind)
}

func TestUpdateCandle_RenameAndRecategorize(t *testing.T) {
	orc := newOrchestrator(t)
	first := mustCreateCategory(t, orc, "Ароматические")
	mustCreateCategory(t, orc, "Декоративные")
	created := mustCreateCandle(t, orc, first.ID, "Хвоя")

	payload := candlePayload("Хвоя зимняя")
	res := orc.UpdateCandle(created.Candle.ID, "Декоративные", payload)
	require.Equal(t, orchestrator.KindOK, res.Kind)

	updated := res.Payload.(domain.CandleAggregate)
	require.Equal(t, "Хвоя зимняя", updated.Candle.Name)
	require.Equal(t, "Декоративные", updated.CategoryName)
}

func TestCreateCategory_DuplicateConflict(t *testing.T) {
	orc := newOrchestrator(t)
	mustCreateCategory(t, orc, "Ароматические")

	res := orc.CreateCategory("Ароматические")
	require.Equal(t, orchestrator.KindConflict, res.Kind)
}

func TestDeleteCategory_WithCandlesConflict(t *testing.T) {
	orc := newOrchestrator(t)
	category := mustCreateCategory(t, orc, "Ароматические")
	mustCreateCandle(t, orc, category.ID, "Лавандовый сон")

	res := orc.DeleteCategory(category.ID)
	require.Equal(t, orchestrator.KindConflict, res.Kind)

	// После удаления свечи категория освобождается.
	candles := orc.CandlesByCategory(category.ID)
	require.Equal(t, orchestrator.KindOK, candles.Kind)
	aggs := candles.Payload.([]domain.CandleAggregate)
	require.Len(t, aggs, 1)

	require.Equal(t, orchestrator.KindOK, orc.DeleteCandle(aggs[0].Candle.ID).Kind)
	require.Equal(t, orchestrator.KindOK, orc.DeleteCategory(category.ID).Kind)
}

func TestCreateOrder_StampsRepeat(t *testing.T) {
	orc := newOrchestrator(t)
	category := mustCreateCategory(t, orc, "Ароматические")
	created := mustCreateCandle(t, orc, category.ID, "Лавандовый сон")

	res := orc.CreateOrder(orderPayload(created.Candle.ID))
	require.Equal(t, orchestrator.KindOK, res.Kind)
	first := res.Payload.(domain.Order)
	require.EqualValues(t, 1, first.Receiver.RepeatCount)

	res = orc.CreateOrder(orderPayload(created.Candle.ID))
	require.Equal(t, orchestrator.KindOK, res.Kind)
	second := res.Payload.(domain.Order)
	require.EqualValues(t, 2, second.Receiver.RepeatCount)
}

func TestCreateOrder_UnknownCandleInvalid(t *testing.T) {
	orc := newOrchestrator(t)

	res := orc.CreateOrder(orderPayload(777))
	require.Equal(t, orchestrator.KindValidationFailed, res.Kind)
	require.Contains(t, res.Messages[0], "unknown candle")
}

func TestCreateOrder_InvalidPayload(t *testing.T) {
	orc := newOrchestrator(t)

	ord := orderPayload(1)
	ord.Receiver.Phone = ""
	ord.PaymentType = "barter"
	res := orc.CreateOrder(ord)
	require.Equal(t, orchestrator.KindValidationFailed, res.Kind)
	require.Len(t, res.Messages, 2)
}

func TestUpdateOrder_IDMismatchInvalid(t *testing.T) {
	orc := newOrchestrator(t)
	category := mustCreateCategory(t, orc, "Ароматические")
	created := mustCreateCandle(t, orc, category.ID, "Лавандовый сон")

	res := orc.CreateOrder(orderPayload(created.Candle.ID))
	require.Equal(t, orchestrator.KindOK, res.Kind)
	ord := res.Payload.(domain.Order)

	payload := orderPayload(created.Candle.ID)
	payload.ID = ord.ID + 5
	res = orc.UpdateOrder(ord.ID, payload)
	require.Equal(t, orchestrator.KindValidationFailed, res.Kind)
}

func TestDeleteOrder_ThenNotFound(t *testing.T) {
	orc := newOrchestrator(t)
	category := mustCreateCategory(t, orc, "Ароматические")
	created := mustCreateCandle(t, orc, category.ID, "Лавандовый сон")

	res := orc.CreateOrder(orderPayload(created.Candle.ID))
	require.Equal(t, orchestrator.KindOK, res.Kind)
	ord := res.Payload.(domain.Order)

	require.Equal(t, orchestrator.KindOK, orc.DeleteOrder(ord.ID).Kind)
	require.Equal(t, orchestrator.KindNotFound, orc.OrderByID(ord.ID).Kind)
	require.Equal(t, orchestrator.KindNotFound, orc.DeleteOrder(ord.ID).Kind)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "ok", orchestrator.KindOK.String())
	require.Equal(t, "not_found", orchestrator.KindNotFound.String())
	require.Equal(t, "validation_failed", orchestrator.KindValidationFailed.String())
	require.Equal(t, "conflict", orchestrator.KindConflict.String())
	require.Equal(t, "internal_failure", orchestrator.KindInternalFailure.String())
}
