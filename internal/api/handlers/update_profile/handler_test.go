package update_profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubService struct {
	gotID int64
	got   *models.UpdateProfileRequest
	err   error
}

func (s *stubService) UpdateProfile(_ context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.gotID, s.got = userID, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserResponse{ID: "3"}, nil
}

func put(svc *stubService, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/auth/me", strings.NewReader(body))
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 3}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &stubService{}
	rec := put(svc, `{"name":"Anna K"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.gotID)
	require.NotNil(t, svc.got.Name)
	assert.Nil(t, svc.got.Password)

	assert.Equal(t, http.StatusConflict, put(&stubService{err: auth.ErrPhoneTaken}, `{"number":"+71111111111"}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(&stubService{err: auth.ErrInvalidInput}, `{"password":"1"}`).Code)
	assert.Equal(t, http.StatusNotFound, put(&stubService{err: auth.ErrUserNotFound}, `{}`).Code)
}
