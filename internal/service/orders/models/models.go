package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// ListOrdersRequest запрос на получение списка заказов
type ListOrdersRequest struct {
	Actor     domain.Actor
	UserID    *int64  // Фильтр по пользователю (только для администратора)
	ServiceID *int64  // Фильтр по услуге (опционально)
	Status    *string // Фильтр по статусу (опционально)
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	ServiceID      int64     `json:"serviceId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	ScheduledEndAt time.Time `json:"scheduledEndAt"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`

	// Денормализованные данные услуги
	ServiceName       string `json:"serviceName"`
	ServicePriceCents int64  `json:"servicePriceCents"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		ServiceID:         o.ServiceID,
		ScheduledAt:       o.ScheduledStart,
		ScheduledEndAt:    o.ScheduledEnd,
		Status:            string(o.Status),
		Notes:             o.Notes,
		ServiceName:       o.ServiceName,
		ServicePriceCents: o.ServicePriceCents,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	if o.CancelledAt != nil {
		cancelledStr := o.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}

	for _, order := range orders {
		if orderResp := FromDomainOrder(order); orderResp != nil {
			resp.Orders = append(resp.Orders, *orderResp)
		}
	}

	return resp
}

// ToDomainOrderStatus конвертирует строку в domain.OrderStatus с валидацией
func ToDomainOrderStatus(status string) (domain.OrderStatus, error) {
	s, ok := domain.ParseOrderStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
