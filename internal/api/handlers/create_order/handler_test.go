package create_order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	createOrder "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubUseCase struct {
	got *createOrder.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createOrder.Request) (*createOrder.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	start := req.ScheduledAt.UTC()
	return &createOrder.Response{
		ID:                10,
		UserID:            req.UserID,
		ServiceID:         req.ServiceID,
		ScheduledStart:    start,
		ScheduledEnd:      start.Add(time.Hour),
		Status:            string(domain.OrderStatusPending),
		ServiceName:       "Wash",
		ServicePriceCents: 300,
		CreatedAt:         start,
		UpdatedAt:         start,
	}, nil
}

func post(uc *stubUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	if withUser {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 7}))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &stubUseCase{}

	rec := post(uc, `{"serviceId":1,"scheduledAt":"2030-06-10T12:00:00+03:00","notes":"pillows"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.got.UserID)
	assert.Equal(t, "pillows", uc.got.Notes)

	var body OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-06-10T09:00:00Z", body.ScheduledAt)
	assert.Equal(t, "2030-06-10T10:00:00Z", body.ScheduledEndAt)
	assert.Equal(t, "pending", body.Status)
}

func TestHandler_Errors(t *testing.T) {
	valid := `{"serviceId":1,"scheduledAt":"2030-06-10T09:00:00Z"}`

	tests := []struct {
		name       string
		body       string
		withUser   bool
		err        error
		wantStatus int
	}{
		{"no user", valid, false, nil, http.StatusUnauthorized},
		{"malformed body", `{"serviceId":`, true, nil, http.StatusBadRequest},
		{"bad time", `{"serviceId":1,"scheduledAt":"tomorrow"}`, true, nil, http.StatusBadRequest},
		{"slot taken", valid, true, fmt.Errorf("%w: service=1", createOrder.ErrSlotTaken), http.StatusConflict},
		{"service not found", valid, true, createOrder.ErrServiceNotFound, http.StatusNotFound},
		{"past start", valid, true, createOrder.ErrStartNotInFuture, http.StatusBadRequest},
		{"invalid input", valid, true, createOrder.ErrInvalidInput, http.StatusBadRequest},
		{"internal", valid, true, errors.Join(createOrder.ErrInternal, domain.ErrStorageFailure), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&stubUseCase{err: tt.err}, tt.body, tt.withUser)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
