package update_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/catalog"
	"github.com/m04kA/SMC-LaundryService/internal/service/catalog/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubService struct {
	gotID int64
	got   *models.UpdateServiceRequest
	err   error
}

func (s *stubService) Update(_ context.Context, id int64, _ domain.Actor, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.gotID, s.got = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ServiceResponse{ID: id}, nil
}

func patch(svc *stubService, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/services/{serviceId}", NewHandler(svc, logger.NewNop()).Handle)

	r := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, IsAdmin: true}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandler_PartialUpdate(t *testing.T) {
	svc := &stubService{}

	rec := patch(svc, "/services/5", `{"active":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	require.NotNil(t, svc.got.Active)
	assert.False(t, *svc.got.Active)
	assert.Nil(t, svc.got.Name)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, patch(&stubService{}, "/services/zero", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, patch(&stubService{err: catalog.ErrServiceNotFound}, "/services/5", `{"priceCents":1000}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(&stubService{err: catalog.ErrInvalidInput}, "/services/5", `{}`).Code)
	assert.Equal(t, http.StatusForbidden, patch(&stubService{err: catalog.ErrAccessDenied}, "/services/5", `{"priceCents":1000}`).Code)
}
