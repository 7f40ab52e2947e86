package list_orders

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
)

const (
	msgMissingUser      = "требуется авторизация"
	msgInvalidUserID    = "некорректный ID пользователя"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStatus    = "некорректный статус, ожидается pending, confirmed или cancelled"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders
// Query params: userId (только администратор), serviceId, status
// Обычный пользователь всегда получает только свои заказы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	userID, err := handlers.QueryInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /orders - Invalid userId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /orders - Invalid serviceId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &models.ListOrdersRequest{
		Actor:     actor,
		UserID:    userID,
		ServiceID: serviceID,
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidInput) {
			h.logger.Warn("GET /orders - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /orders - Failed to list orders: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /orders - Orders retrieved successfully: user_id=%d, count=%d", actor.UserID, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}
