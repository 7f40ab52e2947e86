package models

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int64  `json:"priceCents"`
	Active          *bool  `json:"active,omitempty"`    // По умолчанию true
	OpenHour        *int   `json:"openHour,omitempty"`  // По умолчанию 9
	CloseHour       *int   `json:"closeHour,omitempty"` // По умолчанию 17
}

// ToDomain конвертирует request в domain модель с дефолтными значениями
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	service := &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
		Active:          true,
		OpenHour:        domain.DefaultOpenHour,
		CloseHour:       domain.DefaultCloseHour,
	}

	if r.Active != nil {
		service.Active = *r.Active
	}
	if r.OpenHour != nil {
		service.OpenHour = *r.OpenHour
	}
	if r.CloseHour != nil {
		service.CloseHour = *r.CloseHour
	}

	return service
}

// UpdateServiceRequest запрос на частичное обновление услуги
type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	PriceCents      *int64  `json:"priceCents,omitempty"`
	Active          *bool   `json:"active,omitempty"`
	OpenHour        *int    `json:"openHour,omitempty"`
	CloseHour       *int    `json:"closeHour,omitempty"`
}

// ToDomain конвертирует request в domain.ServiceUpdate
func (r *UpdateServiceRequest) ToDomain() domain.ServiceUpdate {
	return domain.ServiceUpdate{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
		Active:          r.Active,
		OpenHour:        r.OpenHour,
		CloseHour:       r.CloseHour,
	}
}

// IsEmpty возвращает true, если не указано ни одно поле
func (r *UpdateServiceRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.DurationMinutes == nil && r.PriceCents == nil &&
		r.Active == nil && r.OpenHour == nil && r.CloseHour == nil
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	PriceCents      int64     `json:"priceCents"`
	Active          bool      `json:"active"`
	OpenHour        int       `json:"openHour"`
	CloseHour       int       `json:"closeHour"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Active:          s.Active,
		OpenHour:        s.OpenHour,
		CloseHour:       s.CloseHour,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, service := range services {
		if s := FromDomainService(service); s != nil {
			resp.Services = append(resp.Services, *s)
		}
	}

	return resp
}
