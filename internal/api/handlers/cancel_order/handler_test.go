package cancel_order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubService struct {
	gotID    int64
	gotActor domain.Actor
	err      error
}

func (s *stubService) Cancel(_ context.Context, id int64, actor domain.Actor) (*models.OrderResponse, error) {
	s.gotID, s.gotActor = id, actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.OrderResponse{ID: id, UserID: actor.UserID, Status: string(domain.OrderStatusCancelled)}, nil
}

func serve(svc *stubService, path string, actor *domain.Actor) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/orders/{orderId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	r := httptest.NewRequest(http.MethodPatch, path, nil)
	if actor != nil {
		r = r.WithContext(middleware.WithActor(r.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/orders/12/cancel", &domain.Actor{UserID: 3})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.gotID)
	assert.Equal(t, domain.Actor{UserID: 3}, svc.gotActor)

	var body models.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
}

func TestHandler_Errors(t *testing.T) {
	user := &domain.Actor{UserID: 3}

	tests := []struct {
		name       string
		path       string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{"bad id", "/orders/x/cancel", user, nil, http.StatusBadRequest},
		{"no user", "/orders/1/cancel", nil, nil, http.StatusUnauthorized},
		{"not found", "/orders/1/cancel", user, orders.ErrOrderNotFound, http.StatusNotFound},
		{"foreign order", "/orders/1/cancel", user, orders.ErrAccessDenied, http.StatusForbidden},
		{"confirmed order", "/orders/1/cancel", user, orders.ErrCannotCancel, http.StatusBadRequest},
		{"internal", "/orders/1/cancel", user, errors.Join(orders.ErrInternal, domain.ErrStorageFailure), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.path, tt.actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
