package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Guard атомарно проверяет интервал заказа и сохраняет его
//
// Внутри транзакции блокируется строка услуги, поэтому все попытки бронирования одной услуги
// выполняются последовательно. После блокировки журнал перечитывается и интервал проверяется
// тем же правилом domain.Overlaps, что и при генерации слотов. Нарушение exclusion ограничения
// таблицы orders, обнаруженное при вставке, трактуется так же, как найденный конфликт.
// Конец интервала и снимок услуги берутся из заблокированной строки, а не из данных,
// прочитанных до транзакции (они могут прийти из кэша).
type Guard struct {
	services  ServiceLocker
	ledger    OrderLedger
	txManager TransactionManager
}

// NewGuard создает новый guard бронирований
func NewGuard(services ServiceLocker, ledger OrderLedger, txManager TransactionManager) *Guard {
	return &Guard{services: services, ledger: ledger, txManager: txManager}
}

// TryReserve сохраняет черновик заказа со статусом pending, если интервал свободен
// При конфликте возвращает ошибку, для которой errors.Is(err, domain.ErrSlotTaken), и ничего не пишет.
// Отключенная к моменту блокировки услуга дает ErrServiceNotFound. Время начала в будущем проверяет вызывающий код.
func (g *Guard) TryReserve(ctx context.Context, draft *domain.Order) (*domain.Order, error) {
	if draft.ScheduledStart.IsZero() || !draft.ScheduledEnd.After(draft.ScheduledStart) {
		return nil, fmt.Errorf("%w: empty interval", ErrInvalidInput)
	}

	interval := draft.Interval()
	var created *domain.Order

	err := g.txManager.Do(ctx, func(txCtx context.Context) error {
		service, err := g.services.LockForUpdate(txCtx, draft.ServiceID)
		if err != nil {
			return err
		}

		if !service.Active {
			return ErrServiceNotFound
		}

		interval = domain.NewInterval(draft.ScheduledStart, service.DurationMinutes)
		draft.ScheduledEnd = interval.End
		draft.ServiceName = service.Name
		draft.ServicePriceCents = service.PriceCents

		existing, err := g.ledger.ListActiveInWindow(txCtx, draft.ServiceID, interval)
		if err != nil {
			return err
		}

		if interval.OverlapsAny(domain.ActiveIntervals(existing)) {
			return ErrSlotTaken
		}

		draft.Status = domain.OrderStatusPending
		created, err = g.ledger.Create(txCtx, draft)
		return err
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, fmt.Errorf("%w: service=%d %s..%s", ErrSlotTaken, draft.ServiceID,
				interval.Start.Format("2006-01-02T15:04"), interval.End.Format("15:04"))
		}
		return nil, err
	}

	return created, nil
}
