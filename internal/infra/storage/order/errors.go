package order

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order.repository: order not found")

	// ErrOverlapViolation возвращается, когда БД отклонила пересекающийся заказ (exclusion constraint)
	ErrOverlapViolation = fmt.Errorf("order.repository: %w", domain.ErrSlotTaken)

	// ErrStatusChanged возвращается, когда заказ уже не находится в ожидаемом статусе
	ErrStatusChanged = errors.New("order.repository: order status changed concurrently")

	// ErrReferenceNotFound возвращается, когда пользователь или услуга заказа не существуют
	ErrReferenceNotFound = errors.New("order.repository: referenced user or service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: order.repository: failed to build query", domain.ErrStorageFailure)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: order.repository: failed to execute query", domain.ErrStorageFailure)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: order.repository: failed to scan row", domain.ErrStorageFailure)
)
