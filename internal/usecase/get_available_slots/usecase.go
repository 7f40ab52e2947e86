package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов услуги
type UseCase struct {
	serviceRepo       ServiceRepository
	orderRepo         OrderRepository
	metrics           SlotsObserver
	timeProvider      TimeProvider
	logger            Logger
	defaultStepMinute int
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	serviceRepo ServiceRepository,
	orderRepo OrderRepository,
	metrics SlotsObserver,
	defaultStepMinutes int,
	logger Logger,
) *UseCase {
	if defaultStepMinutes <= 0 {
		defaultStepMinutes = domain.DefaultStepMinutes
	}

	return &UseCase{
		serviceRepo:       serviceRepo,
		orderRepo:         orderRepo,
		metrics:           metrics,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
		defaultStepMinute: defaultStepMinutes,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация входных данных и значения по умолчанию
	if req.ServiceID <= 0 {
		uc.logger.Warn("GetAvailableSlots: invalid service id=%d", req.ServiceID)
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	date := req.Date
	if date == "" {
		date = now.UTC().Format(domain.DateFormat)
	}

	step := uc.defaultStepMinute
	if req.StepMinutes != nil {
		step = *req.StepMinutes
	}

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, step=%d", req.ServiceID, date, step)

	// 2. Получаем услугу (должна существовать и быть активной)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Вычисляем рабочее окно дня
	window, err := OperatingWindow(*service, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date=%q: %v", date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 4. Получаем активные заказы, пересекающиеся с окном
	var existing []domain.Interval
	if !window.IsEmpty() {
		orders, err := uc.orderRepo.ListActiveInWindow(ctx, service.ID, window)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get orders for service=%d: %v", service.ID, err)
			return nil, fmt.Errorf("%w: failed to get orders: %w", ErrInternal, err)
		}
		existing = domain.ActiveIntervals(orders)
	}

	// 5. Генерируем слоты
	slots, err := ComputeSlots(*service, date, step, existing, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to compute slots for service=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveSlots(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s (busy intervals: %d)",
		len(slots), service.ID, date, len(existing))

	return &Response{
		Date: date,
		Service: ServiceInfo{
			ID:              service.ID,
			DurationMinutes: service.DurationMinutes,
			OpenHour:        service.OpenHour,
			CloseHour:       service.CloseHour,
		},
		Slots: slots,
	}, nil
}
