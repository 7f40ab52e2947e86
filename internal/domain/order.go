package domain

import "time"

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a booking of a service by a user
type Order struct {
	ID             int64
	UserID         int64
	ServiceID      int64
	ScheduledStart time.Time
	ScheduledEnd   time.Time // Fixed at creation: ScheduledStart + service duration
	Status         OrderStatus
	Notes          string

	// Snapshot of the service at booking time
	ServiceName       string
	ServicePriceCents int64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interval returns the booked interval
func (o *Order) Interval() Interval {
	return Interval{Start: o.ScheduledStart, End: o.ScheduledEnd}
}

// IsActive returns true if the order holds capacity
func (o *Order) IsActive() bool {
	return o.Status != OrderStatusCancelled
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// CanBeCancelled returns true if the order may move to cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending
}

// CanBeConfirmed returns true if the order may move to confirmed
func (o *Order) CanBeConfirmed() bool {
	return o.Status == OrderStatusPending
}

// IsOwnedBy returns true if the order belongs to the user
func (o *Order) IsOwnedBy(userID int64) bool {
	return o.UserID == userID
}

// ActiveIntervals returns the intervals of orders that hold capacity
func ActiveIntervals(orders []*Order) []Interval {
	intervals := make([]Interval, 0, len(orders))
	for _, o := range orders {
		if o.IsActive() {
			intervals = append(intervals, o.Interval())
		}
	}
	return intervals
}

// ParseOrderStatus validates a status string
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return status, true
	default:
		return "", false
	}
}

// OrdersFilter фильтр для получения списка заказов
type OrdersFilter struct {
	UserID    *int64       // Фильтр по владельцу (nil - все пользователи)
	ServiceID *int64       // Фильтр по услуге (опционально)
	Status    *OrderStatus // Фильтр по статусу (опционально)
}
