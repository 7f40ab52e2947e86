package create_order

import (
	"time"

	createOrder "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	ServiceID   int64  `json:"serviceId"`
	ScheduledAt string `json:"scheduledAt"` // RFC 3339, "2025-06-10T09:00:00Z"
	Notes       string `json:"notes,omitempty"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"userId"`
	ServiceID         int64  `json:"serviceId"`
	ScheduledAt       string `json:"scheduledAt"`
	ScheduledEndAt    string `json:"scheduledEndAt"`
	Status            string `json:"status"`
	Notes             string `json:"notes"`
	ServiceName       string `json:"serviceName"`
	ServicePriceCents int64  `json:"servicePriceCents"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) (*createOrder.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createOrder.Request{
		UserID:      userID,
		ServiceID:   r.ServiceID,
		ScheduledAt: scheduledAt,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *OrderResponse {
	return &OrderResponse{
		ID:                resp.ID,
		UserID:            resp.UserID,
		ServiceID:         resp.ServiceID,
		ScheduledAt:       resp.ScheduledStart.UTC().Format(time.RFC3339),
		ScheduledEndAt:    resp.ScheduledEnd.UTC().Format(time.RFC3339),
		Status:            resp.Status,
		Notes:             resp.Notes,
		ServiceName:       resp.ServiceName,
		ServicePriceCents: resp.ServicePriceCents,
		CreatedAt:         resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
