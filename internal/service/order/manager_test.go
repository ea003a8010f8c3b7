package order

import (
	"errors"
	"testing"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/repeat"
	"github.com/road23/candleshop/internal/storage/memory"
)

// failingDetails отклоняет запись позиций, имитируя сбой хранилища.
type failingDetails struct {
	domain.OrderDetailRepository
}

func (f *failingDetails) Create(domain.OrderDetail) (domain.OrderDetail, error) {
	return domain.OrderDetail{}, errors.New("storage write failed")
}

type testEnv struct {
	mgr       *Manager
	orders    domain.OrderRepository
	receivers domain.ReceiverRepository
	details   domain.OrderDetailRepository
}

func newTestEnv() testEnv {
	orders := memory.NewOrderRepository()
	receivers := memory.NewReceiverRepository()
	details := memory.NewOrderDetailRepository()
	counter := repeat.NewCounter(receivers)
	return testEnv{
		mgr:       NewManager(orders, receivers, details, counter, nil),
		orders:    orders,
		receivers: receivers,
		details:   details,
	}
}

func testOrder(phone string) domain.Order {
	return domain.Order{
		TotalSumMinor: 150000,
		PaymentType:   domain.PaymentCash,
		Receiver: domain.Receiver{
			Name:    "Анна",
			Phone:   phone,
			Address: "ул. Ленина, 1",
		},
		Details: []domain.OrderDetail{
			{CandleID: 1, Quantity: 2},
			{CandleID: 2, Quantity: 1},
		},
	}
}

func TestManagerCreate_StampsRepeatCount(t *testing.T) {
	env := newTestEnv()

	first, err := env.mgr.Create(testOrder("+7 900 123 45 67"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Receiver.RepeatCount != 1 {
		t.Fatalf("expected repeat 1 for first order, got %d", first.Receiver.RepeatCount)
	}
	if len(first.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(first.Details))
	}

	second, err := env.mgr.Create(testOrder("  +7 900 123 45 67  "))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.Receiver.RepeatCount != 2 {
		t.Fatalf("expected repeat 2 for same trimmed phone, got %d", second.Receiver.RepeatCount)
	}

	other, err := env.mgr.Create(testOrder("+7 999 000 00 00"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if other.Receiver.RepeatCount != 1 {
		t.Fatalf("expected repeat 1 for new phone, got %d", other.Receiver.RepeatCount)
	}
}

func TestManagerCreate_CompensatesOnDetailFailure(t *testing.T) {
	orders := memory.NewOrderRepository()
	receivers := memory.NewReceiverRepository()
	counter := repeat.NewCounter(receivers)
	mgr := NewManager(orders, receivers, &failingDetails{memory.NewOrderDetailRepository()}, counter, nil)

	if _, err := mgr.Create(testOrder("+7 900 123 45 67")); err == nil {
		t.Fatal("expected create to fail")
	}

	// Компенсация: ни строки заказа, ни получателя остаться не должно.
	stored, err := orders.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no orders after compensation, got %d", len(stored))
	}
	count, err := receivers.CountByPhone("+7 900 123 45 67")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no receivers after compensation, got %d", count)
	}
}

func TestManagerUpdate_ReplacesDetailSet(t *testing.T) {
	env := newTestEnv()

	created, err := env.mgr.Create(testOrder("+7 900 123 45 67"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	payload := testOrder("+7 900 123 45 67")
	payload.Details = []domain.OrderDetail{{CandleID: 3, Quantity: 5}}
	updated, err := env.mgr.Update(created.ID, payload)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Details) != 1 {
		t.Fatalf("expected exactly 1 detail after update, got %d", len(updated.Details))
	}

	stored, err := env.details.ListByOrder(created.ID)
	if err != nil {
		t.Fatalf("list details failed: %v", err)
	}
	if len(stored) != 1 || stored[0].CandleID != 3 || stored[0].Quantity != 5 {
		t.Fatalf("expected full replacement of details, got %v", stored)
	}
}

func TestManagerUpdate_CarriesRepeatCount(t *testing.T) {
	env := newTestEnv()

	if _, err := env.mgr.Create(testOrder("+7 900 123 45 67")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := env.mgr.Create(testOrder("+7 900 123 45 67"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.Receiver.RepeatCount != 2 {
		t.Fatalf("expected repeat 2 before update, got %d", second.Receiver.RepeatCount)
	}

	payload := testOrder("+7 900 123 45 67")
	payload.Receiver.RepeatCount = 0
	updated, err := env.mgr.Update(second.ID, payload)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Receiver.RepeatCount != 2 {
		t.Fatalf("expected repeat carried over from old receiver, got %d", updated.Receiver.RepeatCount)
	}
}

func TestManagerUpdate_IDMismatch(t *testing.T) {
	env := newTestEnv()

	created, err := env.mgr.Create(testOrder("+7 900 123 45 67"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	payload := testOrder("+7 900 123 45 67")
	payload.ID = created.ID + 100
	if _, err := env.mgr.Update(created.ID, payload); !errors.Is(err, domain.ErrOrderIDMismatch) {
		t.Fatalf("expected ErrOrderIDMismatch, got %v", err)
	}
}

func TestManagerUpdate_UnknownOrder(t *testing.T) {
	env := newTestEnv()

	if _, err := env.mgr.Update(99, testOrder("+7 900 123 45 67")); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestManagerDelete_CascadesDependents(t *testing.T) {
	env := newTestEnv()

	created, err := env.mgr.Create(testOrder("+7 900 123 45 67"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := env.mgr.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := env.orders.Get(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected order gone, got %v", err)
	}
	if _, err := env.receivers.GetByOrder(created.ID); !errors.Is(err, domain.ErrReceiverNotFound) {
		t.Fatalf("expected receiver gone, got %v", err)
	}
	details, err := env.details.ListByOrder(created.ID)
	if err != nil {
		t.Fatalf("list details failed: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected no details left, got %d", len(details))
	}

	if err := env.mgr.Delete(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on repeated delete, got %v", err)
	}
}

func TestManagerListByPhone(t *testing.T) {
	env := newTestEnv()

	if _, err := env.mgr.Create(testOrder("+7 900 123 45 67")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.mgr.Create(testOrder("+7 900 123 45 67")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.mgr.Create(testOrder("+7 999 000 00 00")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orders, err := env.mgr.ListByPhone("  +7 900 123 45 67 ")
	if err != nil {
		t.Fatalf("list by phone failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for phone, got %d", len(orders))
	}
	for _, o := range orders {
		if len(o.Details) != 2 {
			t.Fatalf("expected hydrated details, got %d", len(o.Details))
		}
	}
}
