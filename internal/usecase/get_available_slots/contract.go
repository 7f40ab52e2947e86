package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// OrderRepository интерфейс журнала заказов
type OrderRepository interface {
	// ListActiveInWindow получает неотмененные заказы услуги, пересекающиеся с окном
	ListActiveInWindow(ctx context.Context, serviceID int64, window domain.Interval) ([]*domain.Order, error)
}

// SlotsObserver интерфейс для метрик выдачи слотов
type SlotsObserver interface {
	ObserveSlots(count int)
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
