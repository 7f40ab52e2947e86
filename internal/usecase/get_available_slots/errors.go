package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidDate возвращается при некорректной календарной дате
	ErrInvalidDate = fmt.Errorf("get_available_slots: %w", domain.ErrInvalidDate)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
