package repeat_test

import (
	"testing"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/repeat"
	"github.com/road23/candleshop/internal/storage/memory"
)

func TestCounter_Monotonic(t *testing.T) {
	receivers := memory.NewReceiverRepository()
	counter := repeat.NewCounter(receivers)

	phone := "+7 900 123 45 67"
	for want := int32(1); want <= 4; want++ {
		got, err := counter.Next(phone)
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected repeat %d, got %d", want, got)
		}
		if _, err := receivers.Create(domain.Receiver{OrderID: int64(want), Name: "Анна", Phone: phone, RepeatCount: got}); err != nil {
			t.Fatalf("create receiver failed: %v", err)
		}
	}
}

func TestCounter_TrimsSurroundingSpace(t *testing.T) {
	receivers := memory.NewReceiverRepository()
	counter := repeat.NewCounter(receivers)

	if _, err := receivers.Create(domain.Receiver{OrderID: 1, Name: "Анна", Phone: "+7 900 123 45 67"}); err != nil {
		t.Fatalf("create receiver failed: %v", err)
	}

	got, err := counter.Next("   +7 900 123 45 67   ")
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected repeat 2 for trimmed phone, got %d", got)
	}
}

func TestCounter_DifferentPhonesIndependent(t *testing.T) {
	receivers := memory.NewReceiverRepository()
	counter := repeat.NewCounter(receivers)

	if _, err := receivers.Create(domain.Receiver{OrderID: 1, Name: "Анна", Phone: "+7 900 123 45 67"}); err != nil {
		t.Fatalf("create receiver failed: %v", err)
	}

	got, err := counter.Next("+7 999 000 00 00")
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected repeat 1 for new phone, got %d", got)
	}
}
