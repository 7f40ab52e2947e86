package confirm_order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubService struct{ err error }

func (s stubService) Confirm(_ context.Context, id int64, _ domain.Actor) (*models.OrderResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.OrderResponse{ID: id, Status: string(domain.OrderStatusConfirmed)}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ok", nil, http.StatusOK},
		{"not pending", orders.ErrCannotConfirm, http.StatusBadRequest},
		{"not admin", orders.ErrAccessDenied, http.StatusForbidden},
		{"not found", orders.ErrOrderNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/orders/{orderId}/confirm", NewHandler(stubService{err: tt.err}, logger.NewNop()).Handle)

			r := httptest.NewRequest(http.MethodPatch, "/orders/4/confirm", nil)
			r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, IsAdmin: true}))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
