package delete_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth"
)

const (
	msgMissingUser = "требуется авторизация"
	msgNotFound    = "пользователь не найден"
	msgHasOrders   = "нельзя удалить учетную запись, у которой есть заказы"
	msgDeleted     = "учетная запись удалена"
)

// Response ответ на удаление учетной записи
type Response struct {
	Message string `json:"message"`
}

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.DeleteProfile(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, auth.ErrHasOrders):
			h.logger.Warn("DELETE /auth/me - User has orders: user_id=%d", userID)
			handlers.RespondConflict(w, msgHasOrders)
		default:
			h.logger.Error("DELETE /auth/me - Failed to delete profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /auth/me - Profile deleted: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, Response{Message: msgDeleted})
}
