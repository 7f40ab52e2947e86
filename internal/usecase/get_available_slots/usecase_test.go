package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/ptr"
)

type fakeServices struct {
	services map[int64]*domain.Service
	err      error
}

func (f *fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeOrders struct {
	orders  []*domain.Order
	err     error
	calls   int
	windows []domain.Interval
}

func (f *fakeOrders) ListActiveInWindow(_ context.Context, serviceID int64, window domain.Interval) ([]*domain.Order, error) {
	f.calls++
	f.windows = append(f.windows, window)
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Order
	for _, o := range f.orders {
		if o.ServiceID == serviceID && o.IsActive() && o.Interval().Overlaps(window) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type slotsCounter struct{ observed []int }

func (s *slotsCounter) ObserveSlots(count int) { s.observed = append(s.observed, count) }

func newTestUseCase(services *fakeServices, orders *fakeOrders, now time.Time) (*UseCase, *slotsCounter) {
	counter := &slotsCounter{}
	uc := NewUseCase(services, orders, counter, 0, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc, counter
}

func TestUseCase_Execute(t *testing.T) {
	svc := washService()
	services := &fakeServices{services: map[int64]*domain.Service{1: &svc}}

	t.Run("cancelled orders do not block slots", func(t *testing.T) {
		orders := &fakeOrders{orders: []*domain.Order{
			{ServiceID: 1, ScheduledStart: utc(10, 14, 0), ScheduledEnd: utc(10, 15, 0), Status: domain.OrderStatusPending},
			{ServiceID: 1, ScheduledStart: utc(10, 9, 0), ScheduledEnd: utc(10, 10, 0), Status: domain.OrderStatusCancelled},
			{ServiceID: 2, ScheduledStart: utc(10, 10, 0), ScheduledEnd: utc(10, 11, 0), Status: domain.OrderStatusConfirmed},
		}}
		uc, counter := newTestUseCase(services, orders, utc(10, 6, 0))

		resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-06-10", StepMinutes: ptr.Ptr(30)})
		require.NoError(t, err)

		assert.Equal(t, "2025-06-10", resp.Date)
		assert.Equal(t, int64(1), resp.Service.ID)
		assert.Equal(t, []string{
			"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00",
			"15:00", "15:30", "16:00",
		}, starts(resp.Slots))
		assert.Equal(t, []int{12}, counter.observed)
		assert.Equal(t, []domain.Interval{{Start: utc(10, 9, 0), End: utc(10, 17, 0)}}, orders.windows)
	})

	t.Run("defaults date to today and step to 30", func(t *testing.T) {
		orders := &fakeOrders{}
		uc, _ := newTestUseCase(services, orders, utc(12, 15, 10))

		resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1})
		require.NoError(t, err)

		assert.Equal(t, "2025-06-12", resp.Date)
		assert.Equal(t, []string{"15:30", "16:00"}, starts(resp.Slots))
	})

	t.Run("explicit step below minimum is raised to 5 minutes", func(t *testing.T) {
		for _, step := range []int{0, -15, 3} {
			uc, _ := newTestUseCase(services, &fakeOrders{}, utc(1, 0, 0))

			resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-06-10", StepMinutes: ptr.Ptr(step)})
			require.NoError(t, err)

			got := starts(resp.Slots)
			require.Len(t, got, 85, "step %d", step)
			assert.Equal(t, []string{"09:00", "09:05", "09:10"}, got[:3], "step %d", step)
			assert.Equal(t, "16:00", got[len(got)-1], "step %d", step)
		}
	})

	t.Run("empty window skips ledger", func(t *testing.T) {
		closed := washService()
		closed.OpenHour, closed.CloseHour = 12, 12
		orders := &fakeOrders{}
		uc, _ := newTestUseCase(&fakeServices{services: map[int64]*domain.Service{1: &closed}}, orders, utc(1, 0, 0))

		resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-06-10"})
		require.NoError(t, err)

		assert.Empty(t, resp.Slots)
		assert.Zero(t, orders.calls)
	})
}

func TestUseCase_Execute_Errors(t *testing.T) {
	svc := washService()
	inactive := washService()
	inactive.ID = 2
	inactive.Active = false
	services := &fakeServices{services: map[int64]*domain.Service{1: &svc, 2: &inactive}}

	tests := []struct {
		name     string
		services *fakeServices
		orders   *fakeOrders
		req      *Request
		wantErr  error
	}{
		{"non-positive service id", services, &fakeOrders{}, &Request{ServiceID: 0}, ErrInvalidInput},
		{"unknown service", services, &fakeOrders{}, &Request{ServiceID: 99, Date: "2025-06-10"}, ErrServiceNotFound},
		{"inactive service", services, &fakeOrders{}, &Request{ServiceID: 2, Date: "2025-06-10"}, ErrServiceNotFound},
		{"malformed date", services, &fakeOrders{}, &Request{ServiceID: 1, Date: "2025-02-30"}, ErrInvalidDate},
		{"catalog failure", &fakeServices{err: errors.New("conn reset")}, &fakeOrders{}, &Request{ServiceID: 1}, ErrInternal},
		{"ledger failure", services, &fakeOrders{err: fmtStorage()}, &Request{ServiceID: 1, Date: "2025-06-10"}, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(tt.services, tt.orders, utc(1, 0, 0))

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed date is a domain invalid date", func(t *testing.T) {
		uc, _ := newTestUseCase(services, &fakeOrders{}, utc(1, 0, 0))
		_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "10/06/2025"})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("ledger failure keeps storage kind", func(t *testing.T) {
		uc, _ := newTestUseCase(services, &fakeOrders{err: fmtStorage()}, utc(1, 0, 0))
		_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-06-10"})
		assert.ErrorIs(t, err, domain.ErrStorageFailure)
	})
}

func fmtStorage() error {
	return errors.Join(domain.ErrStorageFailure, errors.New("connection refused"))
}
