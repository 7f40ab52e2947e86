package get_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/catalog"
	"github.com/m04kA/SMC-LaundryService/internal/service/catalog/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubService struct {
	err       error
	lastActor domain.Actor
}

func (s *stubService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.ServiceResponse, error) {
	s.lastActor = actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.ServiceResponse{ID: id, Name: "Wash"}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"ok", "/services/3", nil, http.StatusOK},
		{"bad id", "/services/abc", nil, http.StatusBadRequest},
		{"zero id", "/services/0", nil, http.StatusBadRequest},
		{"not found", "/services/3", catalog.ErrServiceNotFound, http.StatusNotFound},
		{"internal", "/services/3", catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/services/{serviceId}", NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_PassesAnonymousActor(t *testing.T) {
	stub := &stubService{}
	router := mux.NewRouter()
	router.HandleFunc("/services/{serviceId}", NewHandler(stub, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Actor{}, stub.lastActor)
	assert.Contains(t, rec.Body.String(), `"name":"Wash"`)
}
