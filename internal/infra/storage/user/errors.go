package user

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrPhoneTaken возвращается, когда номер телефона уже зарегистрирован
	ErrPhoneTaken = errors.New("user.repository: phone number already registered")

	// ErrUserHasOrders возвращается, когда на пользователя ссылаются заказы
	ErrUserHasOrders = errors.New("user.repository: user has orders")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: user.repository: failed to build query", domain.ErrStorageFailure)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: user.repository: failed to execute query", domain.ErrStorageFailure)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: user.repository: failed to scan row", domain.ErrStorageFailure)
)
