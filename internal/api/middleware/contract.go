package middleware

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// TokenVerifier проверяет токен и возвращает ID пользователя
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// ActorResolver загружает пользователя по ID и определяет его права
type ActorResolver interface {
	Authenticate(ctx context.Context, userID int64) (domain.Actor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
