package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
)

// Service сервис для работы с заказами
type Service struct {
	orderRepo OrderRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// GetByID получает заказ по ID
// Пользователь может видеть только свой заказ, администратор - любой
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", id, actor.UserID)

	order, err := s.getAccessible(ctx, "GetByID", id, actor)
	if err != nil {
		return nil, err
	}

	return models.FromDomainOrder(order), nil
}

// List получает заказы
// Обычный пользователь видит только свои заказы; администратор видит все
// или заказы конкретного пользователя, если указан UserID
func (s *Service) List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	filter := domain.OrdersFilter{ServiceID: req.ServiceID}

	if req.Actor.IsAdmin {
		filter.UserID = req.UserID
	} else {
		userID := req.Actor.UserID
		filter.UserID = &userID
	}

	if req.Status != nil {
		status, err := models.ToDomainOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.Actor.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	s.logger.Info("List: fetching orders for user=%d (admin=%t)", req.Actor.UserID, req.Actor.IsAdmin)

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d orders", len(orders))
	return models.FromDomainOrderList(orders), nil
}

// Cancel отменяет заказ
// Отменить может владелец или администратор. Повторная отмена возвращает заказ без изменений.
// Подтвержденный заказ отменить нельзя.
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) (*models.OrderResponse, error) {
	s.logger.Info("Cancel: cancelling order id=%d by user=%d", id, actor.UserID)

	order, err := s.getAccessible(ctx, "Cancel", id, actor)
	if err != nil {
		return nil, err
	}

	if order.IsCancelled() {
		s.logger.Info("Cancel: order id=%d already cancelled", id)
		return models.FromDomainOrder(order), nil
	}

	if !order.CanBeCancelled() {
		s.logger.Warn("Cancel: order id=%d cannot be cancelled, status=%s", id, order.Status)
		return nil, ErrCannotCancel
	}

	updated, err := s.orderRepo.TransitionStatus(ctx, id, domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		if !errors.Is(err, orderRepo.ErrStatusChanged) {
			return nil, s.repoError("Cancel", id, err)
		}

		// Статус сменился между чтением и обновлением: перечитываем
		current, getErr := s.orderRepo.GetByID(ctx, id)
		if getErr != nil {
			return nil, s.repoError("Cancel", id, getErr)
		}
		if current.IsCancelled() {
			return models.FromDomainOrder(current), nil
		}
		s.logger.Warn("Cancel: order id=%d changed to status=%s concurrently", id, current.Status)
		return nil, ErrCannotCancel
	}

	s.logger.Info("Cancel: successfully cancelled order id=%d", id)
	return models.FromDomainOrder(updated), nil
}

// Confirm подтверждает заказ (только администратор)
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor) (*models.OrderResponse, error) {
	s.logger.Info("Confirm: confirming order id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Confirm: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	order, err := s.getAccessible(ctx, "Confirm", id, actor)
	if err != nil {
		return nil, err
	}

	if !order.CanBeConfirmed() {
		s.logger.Warn("Confirm: order id=%d cannot be confirmed, status=%s", id, order.Status)
		return nil, ErrCannotConfirm
	}

	updated, err := s.orderRepo.TransitionStatus(ctx, id, domain.OrderStatusPending, domain.OrderStatusConfirmed)
	if err != nil {
		if errors.Is(err, orderRepo.ErrStatusChanged) {
			s.logger.Warn("Confirm: order id=%d changed status concurrently", id)
			return nil, ErrCannotConfirm
		}
		return nil, s.repoError("Confirm", id, err)
	}

	s.logger.Info("Confirm: successfully confirmed order id=%d", id)
	return models.FromDomainOrder(updated), nil
}

// Вспомогательные методы

// getAccessible получает заказ и проверяет права доступа
func (s *Service) getAccessible(ctx context.Context, op string, id int64, actor domain.Actor) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(op, id, err)
	}

	if !actor.CanAccess(order.UserID) {
		s.logger.Warn("%s: access denied for user=%d to order id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return order, nil
}

func (s *Service) repoError(op string, id int64, err error) error {
	if errors.Is(err, orderRepo.ErrOrderNotFound) {
		s.logger.Warn("%s: order id=%d not found", op, id)
		return ErrOrderNotFound
	}
	s.logger.Error("%s: repository error for order id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
