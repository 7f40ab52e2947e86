package create_order

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// validateRequest проверяет обязательные поля запроса и нормализует заметки
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	req.Notes = strings.TrimSpace(req.Notes)
	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStart проверяет, что время начала строго позже текущего момента
func validateStart(start, now time.Time) error {
	if !start.After(now) {
		return fmt.Errorf("%w: %s is not after %s",
			ErrStartNotInFuture, start.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	return nil
}
