package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: catalog.repository: failed to build query", domain.ErrStorageFailure)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: catalog.repository: failed to execute query", domain.ErrStorageFailure)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: catalog.repository: failed to scan row", domain.ErrStorageFailure)
)
