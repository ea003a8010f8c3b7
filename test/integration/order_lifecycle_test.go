package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/road23/candleshop/internal/service/candle"
	"github.com/road23/candleshop/internal/service/orchestrator"
	"github.com/road23/candleshop/internal/service/order"
	"github.com/road23/candleshop/internal/service/repeat"
	"github.com/road23/candleshop/internal/service/rest"
	"github.com/road23/candleshop/internal/storage/memory"
)

// Сквозной сценарий: каталог и заказы проходят полный жизненный цикл
// через HTTP-слой поверх in-memory шлюза хранилища.

func newShopServer(t *testing.T) *httptest.Server {
	t.Helper()

	candles := memory.NewCandleRepository()
	categories := memory.NewCategoryRepository()
	ingredients := memory.NewIngredientRepository()
	orders := memory.NewOrderRepository()
	receivers := memory.NewReceiverRepository()
	details := memory.NewOrderDetailRepository()

	candleMgr := candle.NewManager(candles, categories, ingredients, nil)
	orderMgr := order.NewManager(orders, receivers, details, repeat.NewCounter(receivers), nil)
	orc := orchestrator.NewOrchestratorWithoutMetrics(candleMgr, orderMgr, candles, categories, nil)

	srv := httptest.NewServer(rest.NewRouter(orc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, target string, body interface{}, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestOrderLifecycle(t *testing.T) {
	srv := newShopServer(t)
	base := srv.URL

	// Каталог: категория и две свечи.
	var category rest.CategoryView
	require.Equal(t, http.StatusOK,
		call(t, http.MethodPost, base+"/api/categories", rest.CategoryView{Name: "Ароматические"}, &category))

	makeCandle := func(name string) rest.CandleFullView {
		var created rest.CandleFullView
		payload := rest.CandleFullView{
			Name:            name,
			RealCostMinor:   10000,
			SellPriceMinor:  25000,
			HeightCM:        10,
			BurningTimeMins: 300,
			Category:        "Ароматические",
			WickDiameterCM:  1,
			WaxNeededGram:   180,
		}
		status := call(t, http.MethodPost,
			fmt.Sprintf("%s/api/candles?categoryId=%d", base, category.ID), payload, &created)
		require.Equal(t, http.StatusOK, status)
		return created
	}
	lavender := makeCandle("Лавандовый сон")
	citrus := makeCandle("Цитрус")

	// Первый заказ: две позиции, первый заказ на этот телефон.
	phone := "+7 900 123 45 67"
	makeOrder := func(sum int64, details ...rest.OrderDetailView) rest.OrderView {
		var created rest.OrderView
		payload := rest.OrderView{
			TotalSumMinor: sum,
			PaymentCode:   1,
			Receiver:      rest.ReceiverView{Name: "Анна", Phone: phone, Address: "ул. Ленина, 1"},
			Details:       details,
		}
		require.Equal(t, http.StatusOK, call(t, http.MethodPost, base+"/api/orders", payload, &created))
		return created
	}

	first := makeOrder(150000,
		rest.OrderDetailView{CandleID: lavender.ID, Quantity: 2},
		rest.OrderDetailView{CandleID: citrus.ID, Quantity: 1},
	)
	require.EqualValues(t, 1, first.Receiver.RepeatCount)
	require.Len(t, first.Details, 2)

	// Второй заказ с тем же телефоном: номер повтора растёт.
	second := makeOrder(80000, rest.OrderDetailView{CandleID: citrus.ID, Quantity: 1})
	require.EqualValues(t, 2, second.Receiver.RepeatCount)

	// Обновление первого заказа: набор позиций заменяется целиком.
	update := rest.OrderView{
		TotalSumMinor: 200000,
		PaymentCode:   0,
		Receiver:      rest.ReceiverView{Name: "Анна", Phone: phone, Address: "ул. Ленина, 1"},
		Details:       []rest.OrderDetailView{{CandleID: lavender.ID, Quantity: 5}},
	}
	var updated rest.OrderView
	require.Equal(t, http.StatusOK,
		call(t, http.MethodPut, fmt.Sprintf("%s/api/orders/%d", base, first.ID), update, &updated))
	require.Len(t, updated.Details, 1)
	require.EqualValues(t, 5, updated.Details[0].Quantity)
	require.EqualValues(t, 1, updated.Receiver.RepeatCount)

	// Выборки: по телефону и по границам суммы.
	var byPhone []rest.OrderView
	require.Equal(t, http.StatusOK,
		call(t, http.MethodGet, base+"/api/orders/phone/"+url.PathEscape(phone), nil, &byPhone))
	require.Len(t, byPhone, 2)

	var pricey []rest.OrderView
	require.Equal(t, http.StatusOK,
		call(t, http.MethodGet, base+"/api/orders/minsum/100000", nil, &pricey))
	require.Len(t, pricey, 1)
	require.Equal(t, updated.ID, pricey[0].ID)

	// Удаление заказа: пропадает из всех выборок.
	require.Equal(t, http.StatusOK,
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/orders/%d", base, second.ID), nil, nil))
	require.Equal(t, http.StatusNotFound,
		call(t, http.MethodGet, fmt.Sprintf("%s/api/orders/%d", base, second.ID), nil, nil))

	byPhone = nil
	require.Equal(t, http.StatusOK,
		call(t, http.MethodGet, base+"/api/orders/phone/"+url.PathEscape(phone), nil, &byPhone))
	require.Len(t, byPhone, 1)

	// Категорию с живыми свечами удалить нельзя.
	require.Equal(t, http.StatusUnprocessableEntity,
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/categories/%d", base, category.ID), nil, nil))

	// Каталог сворачивается: свечи, затем категория.
	require.Equal(t, http.StatusOK,
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/orders/%d", base, updated.ID), nil, nil))
	require.Equal(t, http.StatusOK,
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/candles/%d", base, lavender.ID), nil, nil))
	require.Equal(t, http.StatusOK,
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/candles/%d", base, citrus.ID), nil, nil))
	require.Equal(t, http.StatusOK,
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/categories/%d", base, category.ID), nil, nil))
}
