// Package order реализует менеджер агрегата "заказ + получатель + позиции".
//
// Хранилище фиксирует каждый вызов независимо, поэтому инварианты агрегата
// (заказ никогда не существует без получателя; после обновления остаются
// ровно позиции из payload) выстраиваются здесь: фиксированным порядком
// записей, полной заменой зависимых наборов и компенсирующими удалениями
// при сбое.
package order

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/repeat"
)

// Manager управляет жизненным циклом агрегата заказа.
type Manager struct {
	orders    domain.OrderRepository
	receivers domain.ReceiverRepository
	details   domain.OrderDetailRepository
	counter   *repeat.Counter
	logger    *log.Entry
}

// NewManager создаёт менеджер агрегата заказа.
func NewManager(
	orders domain.OrderRepository,
	receivers domain.ReceiverRepository,
	details domain.OrderDetailRepository,
	counter *repeat.Counter,
	logger *log.Entry,
) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "order-manager")
	}
	return &Manager{
		orders:    orders,
		receivers: receivers,
		details:   details,
		counter:   counter,
		logger:    logger,
	}
}

// Create сохраняет новый заказ вместе с получателем и позициями.
// Перед записью у получателя фиксируется порядковый номер заказа для его
// телефона. Порядок записей: строка заказа → получатель → позиции; при
// сбое уже созданные строки удаляются компенсирующими шагами, чтобы
// внешне заказ существовал либо целиком, либо никак.
func (m *Manager) Create(o domain.Order) (domain.Order, error) {
	repeatCount, err := m.counter.Next(o.Receiver.Phone)
	if err != nil {
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}

	receiver := o.Receiver
	detailSet := o.Details

	created, err := m.orders.Create(o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	receiver.OrderID = created.ID
	receiver.Phone = domain.NormalizePhone(receiver.Phone)
	receiver.RepeatCount = repeatCount
	createdReceiver, err := m.receivers.Create(receiver)
	if err != nil {
		m.compensateCreate(created.ID, 0)
		return domain.Order{}, fmt.Errorf("create receiver: %w", err)
	}

	createdDetails := make([]domain.OrderDetail, 0, len(detailSet))
	for _, d := range detailSet {
		d.OrderID = created.ID
		stored, err := m.details.Create(d)
		if err != nil {
			m.compensateCreate(created.ID, createdReceiver.ID)
			return domain.Order{}, fmt.Errorf("create order detail: %w", err)
		}
		createdDetails = append(createdDetails, stored)
	}

	created.Receiver = createdReceiver
	created.Details = createdDetails
	return created, nil
}

// Update заменяет агрегат заказа целиком. Идентификатор в payload обязан
// совпадать с идентификатором операции (ErrOrderIDMismatch), заказ обязан
// существовать (ErrOrderNotFound). Порядок фиксирован: удалить все позиции →
// удалить получателя → записать замену, собранную из payload. Полная замена
// исключает частичное слияние старого и нового наборов позиций.
func (m *Manager) Update(orderID int64, o domain.Order) (domain.Order, error) {
	if o.ID != 0 && o.ID != orderID {
		return domain.Order{}, domain.ErrOrderIDMismatch
	}

	current, err := m.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if _, err := m.details.DeleteByOrder(orderID); err != nil {
		return domain.Order{}, fmt.Errorf("delete old order details: %w", err)
	}

	if old, err := m.receivers.GetByOrder(orderID); err == nil {
		if err := m.receivers.Delete(old.ID); err != nil {
			return domain.Order{}, fmt.Errorf("delete old receiver: %w", err)
		}
		// Номер повтора — снимок на момент создания заказа, при обновлении
		// он переносится со старого получателя, а не пересчитывается.
		if o.Receiver.RepeatCount == 0 {
			o.Receiver.RepeatCount = old.RepeatCount
		}
	} else if !errors.Is(err, domain.ErrReceiverNotFound) {
		return domain.Order{}, fmt.Errorf("lookup old receiver: %w", err)
	}

	replacement := current
	replacement.CustomerID = o.CustomerID
	replacement.OrderDate = o.OrderDate
	replacement.Promocode = o.Promocode
	replacement.TotalSumMinor = o.TotalSumMinor
	replacement.PaymentType = o.PaymentType
	replacement.IsPaid = o.IsPaid
	replacement.Comment = o.Comment
	replacement.UpdatedAt = time.Now().UTC()

	if err := m.orders.Update(replacement); err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	receiver := o.Receiver
	receiver.OrderID = orderID
	receiver.Phone = domain.NormalizePhone(receiver.Phone)
	if receiver.RepeatCount < 1 {
		receiver.RepeatCount = 1
	}
	createdReceiver, err := m.receivers.Create(receiver)
	if err != nil {
		return domain.Order{}, fmt.Errorf("recreate receiver: %w", err)
	}

	createdDetails := make([]domain.OrderDetail, 0, len(o.Details))
	for _, d := range o.Details {
		d.ID = 0
		d.OrderID = orderID
		stored, err := m.details.Create(d)
		if err != nil {
			return domain.Order{}, fmt.Errorf("recreate order detail: %w", err)
		}
		createdDetails = append(createdDetails, stored)
	}

	replacement.Receiver = createdReceiver
	replacement.Details = createdDetails
	return replacement, nil
}

// Delete удаляет заказ вместе с зависимыми записями. Порядок фиксирован:
// строка заказа → получатель → позиции; отсутствие получателя — не ошибка.
// Каскад хранилища не предполагается: все зависимые удаления выполняются явно.
func (m *Manager) Delete(orderID int64) error {
	if _, err := m.orders.Get(orderID); err != nil {
		return err
	}

	if err := m.orders.Delete(orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if receiver, err := m.receivers.GetByOrder(orderID); err == nil {
		if err := m.receivers.Delete(receiver.ID); err != nil {
			return fmt.Errorf("delete receiver: %w", err)
		}
	} else if !errors.Is(err, domain.ErrReceiverNotFound) {
		return fmt.Errorf("lookup receiver: %w", err)
	}

	if _, err := m.details.DeleteByOrder(orderID); err != nil {
		return fmt.Errorf("delete order details: %w", err)
	}

	return nil
}

// Get возвращает заказ с получателем и позициями.
func (m *Manager) Get(orderID int64) (domain.Order, error) {
	o, err := m.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	return m.hydrate(o)
}

// List возвращает все заказы.
func (m *Manager) List() ([]domain.Order, error) {
	orders, err := m.orders.List()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return m.hydrateAll(orders)
}

// ListByCustomer возвращает заказы клиента.
func (m *Manager) ListByCustomer(customerID int64) ([]domain.Order, error) {
	orders, err := m.orders.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	return m.hydrateAll(orders)
}

// ListByPhone возвращает заказы по телефону получателя. Шлюз хранения
// отдаёт только по-сущностные выборки, поэтому телефон резолвится через
// репозиторий получателей, а затем поднимаются их заказы.
func (m *Manager) ListByPhone(phone string) ([]domain.Order, error) {
	receivers, err := m.receivers.ListByPhone(domain.NormalizePhone(phone))
	if err != nil {
		return nil, fmt.Errorf("list receivers by phone: %w", err)
	}

	orders := make([]domain.Order, 0, len(receivers))
	for _, rc := range receivers {
		o, err := m.Get(rc.OrderID)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				// Осиротевший получатель: заказ уже удалён. Пропускаем.
				m.logger.WithField("order_id", rc.OrderID).Warn("receiver without order")
				continue
			}
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// ListByDate возвращает заказы за календарный день.
func (m *Manager) ListByDate(date time.Time) ([]domain.Order, error) {
	orders, err := m.orders.ListByDate(date)
	if err != nil {
		return nil, fmt.Errorf("list orders by date: %w", err)
	}
	return m.hydrateAll(orders)
}

// ListByMinSum возвращает заказы с суммой не меньше указанной.
func (m *Manager) ListByMinSum(minMinor int64) ([]domain.Order, error) {
	orders, err := m.orders.ListByMinSum(minMinor)
	if err != nil {
		return nil, fmt.Errorf("list orders by min sum: %w", err)
	}
	return m.hydrateAll(orders)
}

// ListByMaxSum возвращает заказы с суммой не больше указанной.
func (m *Manager) ListByMaxSum(maxMinor int64) ([]domain.Order, error) {
	orders, err := m.orders.ListByMaxSum(maxMinor)
	if err != nil {
		return nil, fmt.Errorf("list orders by max sum: %w", err)
	}
	return m.hydrateAll(orders)
}

// compensateCreate откатывает уже зафиксированные шаги неудачного создания.
// Сбой самой компенсации только логируется: дальше откатывать нечем.
func (m *Manager) compensateCreate(orderID, receiverID int64) {
	if receiverID != 0 {
		if err := m.receivers.Delete(receiverID); err != nil {
			m.logger.WithError(err).WithField("order_id", orderID).
				Error("compensating receiver delete failed")
		}
	}
	if _, err := m.details.DeleteByOrder(orderID); err != nil {
		m.logger.WithError(err).WithField("order_id", orderID).
			Error("compensating details delete failed")
	}
	if err := m.orders.Delete(orderID); err != nil {
		m.logger.WithError(err).WithField("order_id", orderID).
			Error("compensating order delete failed, order left without receiver")
	}
}

// hydrate дополняет строку заказа получателем и позициями.
func (m *Manager) hydrate(o domain.Order) (domain.Order, error) {
	receiver, err := m.receivers.GetByOrder(o.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrReceiverNotFound) {
			return domain.Order{}, fmt.Errorf("load receiver: %w", err)
		}
		// Заказ без получателя — нарушение инварианта, зафиксированное
		// в хранилище до нас. Читаем как есть.
		m.logger.WithField("order_id", o.ID).Warn("order without receiver")
	}
	o.Receiver = receiver

	details, err := m.details.ListByOrder(o.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load order details: %w", err)
	}
	o.Details = details
	return o, nil
}

func (m *Manager) hydrateAll(orders []domain.Order) ([]domain.Order, error) {
	result := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		hydrated, err := m.hydrate(o)
		if err != nil {
			return nil, err
		}
		result = append(result, hydrated)
	}
	return result, nil
}
