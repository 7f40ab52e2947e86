package create_order

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/catalog"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
)

type txKey struct{}

// lockingTxManager эмулирует блокировку строки услуги: транзакции выполняются по одной
type lockingTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *lockingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

// passthroughTxManager не дает никакой изоляции; защиту обеспечивает только ограничение хранилища
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryCatalog struct {
	services map[int64]*domain.Service
	err      error
	locked   []int64
	mu       sync.Mutex
}

func (c *memoryCatalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	s, ok := c.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func (c *memoryCatalog) LockForUpdate(ctx context.Context, id int64) (*domain.Service, error) {
	c.mu.Lock()
	c.locked = append(c.locked, id)
	c.mu.Unlock()
	return c.GetByID(ctx, id)
}

type memoryLedger struct {
	mu     sync.Mutex
	orders []*domain.Order
	nextID int64

	// enforceExclusion эмулирует exclusion ограничение таблицы orders
	enforceExclusion bool
	// hideFromReads скрывает заказы от чтения, имитируя гонку между проверкой и вставкой
	hideFromReads bool
	listErr       error
	createErr     error
	creates       int
}

func (l *memoryLedger) ListActiveInWindow(_ context.Context, serviceID int64, window domain.Interval) ([]*domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listErr != nil {
		return nil, l.listErr
	}
	if l.hideFromReads {
		return nil, nil
	}
	out := make([]*domain.Order, 0)
	for _, o := range l.orders {
		if o.ServiceID == serviceID && o.IsActive() && o.Interval().Overlaps(window) {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (l *memoryLedger) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.creates++
	if l.createErr != nil {
		return nil, l.createErr
	}
	if l.enforceExclusion {
		for _, o := range l.orders {
			if o.ServiceID == order.ServiceID && o.IsActive() && o.Interval().Overlaps(order.Interval()) {
				return nil, orderRepo.ErrOverlapViolation
			}
		}
	}
	l.nextID++
	copied := *order
	copied.ID = l.nextID
	l.orders = append(l.orders, &copied)
	result := copied
	return &result, nil
}

func (l *memoryLedger) active(serviceID int64) []*domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range l.orders {
		if o.ServiceID == serviceID && o.IsActive() {
			out = append(out, o)
		}
	}
	return out
}

type reservationCounter struct {
	mu      sync.Mutex
	results map[string]int
}

func (r *reservationCounter) IncReservation(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = make(map[string]int)
	}
	r.results[result]++
}
