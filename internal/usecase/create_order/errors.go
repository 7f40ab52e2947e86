package create_order

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_order: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrStartNotInFuture возвращается, когда время начала не позже текущего момента
	ErrStartNotInFuture = errors.New("create_order: scheduled time must be in the future")

	// ErrSlotTaken возвращается, когда интервал пересекается с другим активным заказом
	ErrSlotTaken = fmt.Errorf("create_order: %w", domain.ErrSlotTaken)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
