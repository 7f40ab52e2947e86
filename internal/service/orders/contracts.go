package orders

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// OrderRepository интерфейс журнала заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
