package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-LaundryService/pkg/metrics"
)

// UseCase use case для создания заказа
type UseCase struct {
	serviceRepo  ServiceRepository
	guard        *Guard
	metrics      ReservationRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	serviceRepo ServiceRepository,
	guard *Guard,
	metrics ReservationRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		guard:        guard,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: user=%d, service=%d, scheduledAt=%s",
		req.UserID, req.ServiceID, req.ScheduledAt.UTC().Format("2006-01-02T15:04:05Z"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	start := req.ScheduledAt.UTC()

	// 2. Время начала должно быть строго в будущем
	if err := validateStart(start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateOrder: %v", err)
		return nil, err
	}

	// 3. Получаем услугу (должна существовать и быть активной)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateOrder: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateOrder: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateOrder: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Формируем черновик с денормализацией данных услуги
	interval := domain.NewInterval(start, service.DurationMinutes)
	draft := &domain.Order{
		UserID:            req.UserID,
		ServiceID:         service.ID,
		ScheduledStart:    interval.Start,
		ScheduledEnd:      interval.End,
		Status:            domain.OrderStatusPending,
		Notes:             req.Notes,
		ServiceName:       service.Name,
		ServicePriceCents: service.PriceCents,
	}

	// 5. Атомарная проверка пересечений и сохранение
	created, err := uc.guard.TryReserve(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotTaken):
			uc.record(metrics.ReservationConflict)
			uc.logger.Warn("CreateOrder: slot taken: %v", err)
			return nil, err
		case errors.Is(err, catalogRepo.ErrServiceNotFound), errors.Is(err, ErrServiceNotFound):
			uc.logger.Warn("CreateOrder: service id=%d disappeared before reservation", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.record(metrics.ReservationError)
		uc.logger.Error("CreateOrder: failed to reserve slot: %v", err)
		return nil, fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
	}

	uc.record(metrics.ReservationCreated)
	uc.logger.Info("CreateOrder: successfully created order id=%d [%s, %s)",
		created.ID, created.ScheduledStart.Format("15:04"), created.ScheduledEnd.Format("15:04"))

	return &Response{
		ID:                created.ID,
		UserID:            created.UserID,
		ServiceID:         created.ServiceID,
		ScheduledStart:    created.ScheduledStart,
		ScheduledEnd:      created.ScheduledEnd,
		Status:            string(created.Status),
		Notes:             created.Notes,
		ServiceName:       created.ServiceName,
		ServicePriceCents: created.ServicePriceCents,
		CreatedAt:         created.CreatedAt,
		UpdatedAt:         created.UpdatedAt,
	}, nil
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.IncReservation(result)
	}
}
