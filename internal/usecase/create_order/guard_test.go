package create_order

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 6, 10, hour, minute, 0, 0, time.UTC)
}

func wash() *domain.Service {
	return &domain.Service{ID: 1, Name: "Wash", DurationMinutes: 60, PriceCents: 1000, Active: true, OpenHour: 9, CloseHour: 17}
}

func draftAt(serviceID int64, start time.Time, minutes int) *domain.Order {
	i := domain.NewInterval(start, minutes)
	return &domain.Order{UserID: 7, ServiceID: serviceID, ScheduledStart: i.Start, ScheduledEnd: i.End}
}

func newGuard(ledger *memoryLedger) (*Guard, *memoryCatalog, *lockingTxManager) {
	catalog := &memoryCatalog{services: map[int64]*domain.Service{1: wash(), 2: {ID: 2, DurationMinutes: 30, Active: true}}}
	tx := &lockingTxManager{}
	return NewGuard(catalog, ledger, tx), catalog, tx
}

func TestGuard_TryReserve(t *testing.T) {
	t.Run("free interval is stored as pending", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, catalog, tx := newGuard(ledger)

		created, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)

		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, domain.OrderStatusPending, created.Status)
		assert.Equal(t, []int64{1}, catalog.locked)
		assert.Equal(t, 1, tx.calls)
	})

	t.Run("overlap is rejected without write", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, _, _ := newGuard(ledger)
		_, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)

		_, err = guard.TryReserve(context.Background(), draftAt(1, at(10, 30), 60))
		assert.ErrorIs(t, err, domain.ErrSlotTaken)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, 1, ledger.creates)
	})

	t.Run("touching intervals do not conflict", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, _, _ := newGuard(ledger)
		_, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)

		_, err = guard.TryReserve(context.Background(), draftAt(1, at(11, 0), 60))
		require.NoError(t, err)
		_, err = guard.TryReserve(context.Background(), draftAt(1, at(9, 0), 60))
		require.NoError(t, err)
	})

	t.Run("other services do not conflict", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, _, _ := newGuard(ledger)
		_, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)

		_, err = guard.TryReserve(context.Background(), draftAt(2, at(10, 0), 30))
		assert.NoError(t, err)
	})

	t.Run("cancelled orders free their interval", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, _, _ := newGuard(ledger)
		created, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)
		ledger.orders[0].Status = domain.OrderStatusCancelled

		again, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, again.ID)
	})

	t.Run("late constraint violation is slot taken", func(t *testing.T) {
		ledger := &memoryLedger{enforceExclusion: true}
		guard, _, _ := newGuard(ledger)
		_, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		require.NoError(t, err)

		ledger.hideFromReads = true
		_, err = guard.TryReserve(context.Background(), draftAt(1, at(10, 15), 60))
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Len(t, ledger.active(1), 1)
	})

	t.Run("storage failure is not slot taken", func(t *testing.T) {
		storage := errors.Join(domain.ErrStorageFailure, errors.New("connection refused"))
		ledger := &memoryLedger{listErr: storage}
		guard, _, _ := newGuard(ledger)

		_, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		assert.ErrorIs(t, err, domain.ErrStorageFailure)
		assert.NotErrorIs(t, err, domain.ErrSlotTaken)
		assert.Zero(t, ledger.creates)
	})

	t.Run("end and snapshot come from the locked row", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, catalog, _ := newGuard(ledger)
		catalog.services[1].DurationMinutes = 90
		catalog.services[1].PriceCents = 1250

		draft := draftAt(1, at(10, 0), 60)
		draft.ServiceName, draft.ServicePriceCents = "Old wash", 1000

		created, err := guard.TryReserve(context.Background(), draft)
		require.NoError(t, err)

		assert.Equal(t, at(11, 30), created.ScheduledEnd)
		assert.Equal(t, "Wash", created.ServiceName)
		assert.Equal(t, int64(1250), created.ServicePriceCents)
	})

	t.Run("longer locked duration is checked against the ledger", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, catalog, _ := newGuard(ledger)
		_, err := guard.TryReserve(context.Background(), draftAt(1, at(11, 0), 60))
		require.NoError(t, err)

		catalog.services[1].DurationMinutes = 90
		_, err = guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, 1, ledger.creates)
	})

	t.Run("service disabled before lock is not reserved", func(t *testing.T) {
		ledger := &memoryLedger{}
		guard, catalog, _ := newGuard(ledger)
		catalog.services[1].Active = false

		_, err := guard.TryReserve(context.Background(), draftAt(1, at(10, 0), 60))
		assert.ErrorIs(t, err, ErrServiceNotFound)
		assert.Zero(t, ledger.creates)
	})

	t.Run("empty interval rejected", func(t *testing.T) {
		guard, _, _ := newGuard(&memoryLedger{})
		_, err := guard.TryReserve(context.Background(), &domain.Order{ServiceID: 1, ScheduledStart: at(10, 0), ScheduledEnd: at(10, 0)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGuard_ConcurrentSameSlot(t *testing.T) {
	ledger := &memoryLedger{}
	guard, _, _ := newGuard(ledger)

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, conflicts := 0, 0

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := guard.TryReserve(context.Background(), draftAt(1, at(14, 0), 60))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, domain.ErrSlotTaken) {
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, ledger.active(1), 1)
}

func TestGuard_ConcurrentBackstopOnly(t *testing.T) {
	// Без сериализации проверки гонку закрывает ограничение хранилища
	ledger := &memoryLedger{enforceExclusion: true, hideFromReads: true}
	catalog := &memoryCatalog{services: map[int64]*domain.Service{1: wash()}}
	guard := NewGuard(catalog, ledger, passthroughTxManager{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = guard.TryReserve(context.Background(), draftAt(1, at(14, 0), 60))
		}()
	}
	wg.Wait()

	assert.Len(t, ledger.active(1), 1)
}

// Случайные конкурентные попытки: активные заказы услуги никогда не пересекаются
func TestGuard_RandomConcurrentReservationsNeverOverlap(t *testing.T) {
	ledger := &memoryLedger{}
	guard, _, _ := newGuard(ledger)
	rng := rand.New(rand.NewPCG(1, 2))

	drafts := make([]*domain.Order, 100)
	for i := range drafts {
		drafts[i] = draftAt(1, at(9, 0).Add(time.Duration(rng.IntN(8*12))*5*time.Minute), 60)
	}

	var wg sync.WaitGroup
	for _, d := range drafts {
		wg.Add(1)
		go func(d *domain.Order) {
			defer wg.Done()
			_, err := guard.TryReserve(context.Background(), d)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrSlotTaken)
			}
		}(d)
	}
	wg.Wait()

	active := ledger.active(1)
	require.NotEmpty(t, active)
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			assert.False(t, active[i].Interval().Overlaps(active[j].Interval()),
				"orders %d and %d overlap", active[i].ID, active[j].ID)
		}
	}
}
