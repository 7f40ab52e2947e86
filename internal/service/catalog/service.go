package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-LaundryService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	cache       CacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
// cache может быть nil
func NewService(serviceRepo ServiceRepository, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List получает услуги, отсортированные по названию
// Отключенные услуги возвращаются только администратору по запросу includeInactive
func (s *Service) List(ctx context.Context, actor domain.Actor, includeInactive bool) (*models.ServiceListResponse, error) {
	var (
		services []*domain.Service
		err      error
	)

	if includeInactive && actor.IsAdmin {
		services, err = s.serviceRepo.ListAll(ctx)
	} else {
		services, err = s.serviceRepo.ListActive(ctx)
	}
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
// Отключенная услуга видна только администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ServiceResponse, error) {
	service, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !service.Active && !actor.IsAdmin {
		s.logger.Warn("GetByID: service id=%d is inactive", id)
		return nil, ErrServiceNotFound
	}

	return models.FromDomainService(service), nil
}

// Create создает услугу (только администратор)
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q by user=%d", req.Name, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Create: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	service := req.ToDomain()
	normalize(service)

	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу (только администратор)
// Изменение длительности не затрагивает уже созданные заказы: их интервал зафиксирован при создании
func (s *Service) Update(ctx context.Context, id int64, actor domain.Actor, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Update: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	current, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	updated := req.ToDomain().Apply(*current)
	normalize(&updated)

	if err := validateService(&updated); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	saved, err := s.serviceRepo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("Update: failed to invalidate cache for service id=%d: %v", id, err)
		}
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(saved), nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return service, nil
}

func normalize(service *domain.Service) {
	service.Name = strings.TrimSpace(service.Name)
	service.Description = strings.TrimSpace(service.Description)
}

// validateService проверяет параметры услуги
// Несогласованные часы работы отклоняются здесь, хотя генерация слотов для них вернула бы пустой список
func validateService(s *domain.Service) error {
	if s.Name == "" || utf8.RuneCountInString(s.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be between 1 and %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if s.DurationMinutes < domain.MinDurationMinutes || s.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if s.PriceCents < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	if s.OpenHour < domain.MinOpenHour || s.OpenHour > domain.MaxOpenHour {
		return fmt.Errorf("%w: openHour must be between %d and %d", ErrInvalidInput, domain.MinOpenHour, domain.MaxOpenHour)
	}

	if s.CloseHour < domain.MinCloseHour || s.CloseHour > domain.MaxCloseHour {
		return fmt.Errorf("%w: closeHour must be between %d and %d", ErrInvalidInput, domain.MinCloseHour, domain.MaxCloseHour)
	}

	if s.OpenHour >= s.CloseHour {
		return fmt.Errorf("%w: openHour must be before closeHour", ErrInvalidInput)
	}

	return nil
}
