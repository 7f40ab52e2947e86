package create_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг (может быть закеширован)
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ServiceLocker блокирует строку услуги до конца транзакции
type ServiceLocker interface {
	LockForUpdate(ctx context.Context, id int64) (*domain.Service, error)
}

// OrderLedger интерфейс журнала заказов
type OrderLedger interface {
	ListActiveInWindow(ctx context.Context, serviceID int64, window domain.Interval) ([]*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReservationRecorder интерфейс для метрик бронирования
type ReservationRecorder interface {
	IncReservation(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
