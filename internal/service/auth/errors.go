package auth

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrPhoneTaken возвращается, когда номер телефона уже зарегистрирован
	ErrPhoneTaken = errors.New("user already exists")

	// ErrHasOrders возвращается при удалении пользователя, у которого есть заказы
	ErrHasOrders = errors.New("user has orders")

	// ErrInvalidCredentials возвращается при неверном телефоне или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
