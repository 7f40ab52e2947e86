package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/pgerr"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"user_id",
	"service_id",
	"scheduled_start",
	"scheduled_end",
	"status",
	"notes",
	"service_name",
	"service_price_cents",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository журнал заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заказ
// Если в контексте передана активная транзакция, использует её.
// Пересечение с другим неотмененным заказом той же услуги отклоняется ограничением
// orders_no_overlap и возвращается как ErrOverlapViolation.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"user_id",
			"service_id",
			"scheduled_start",
			"scheduled_end",
			"status",
			"notes",
			"service_name",
			"service_price_cents",
		).
		Values(
			order.UserID,
			order.ServiceID,
			order.ScheduledStart,
			order.ScheduledEnd,
			order.Status,
			order.Notes,
			order.ServiceName,
			order.ServicePriceCents,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		switch {
		case pgerr.IsExclusionViolation(err):
			return nil, ErrOverlapViolation
		case pgerr.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: %s", ErrReferenceNotFound, pgerr.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return order, nil
}

// List получает заказы по фильтру, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_start DESC", "id DESC")

	return r.query(ctx, "List", selectBuilder)
}

// ListActiveInWindow получает неотмененные заказы услуги, пересекающиеся с окном [start, end)
// Условие пересечения совпадает с domain.Overlaps: scheduled_start < end AND scheduled_end > start
func (r *Repository) ListActiveInWindow(ctx context.Context, serviceID int64, window domain.Interval) ([]*domain.Order, error) {
	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.NotEq{"status": domain.OrderStatusCancelled}).
		Where(squirrel.Lt{"scheduled_start": window.End}).
		Where(squirrel.Gt{"scheduled_end": window.Start}).
		OrderBy("scheduled_start ASC")

	return r.query(ctx, "ListActiveInWindow", selectBuilder)
}

// TransitionStatus переводит заказ из статуса from в статус to
// Обновление условное: если заказ уже не в статусе from, возвращается ErrStatusChanged
// (или ErrOrderNotFound, если заказа нет). При отмене проставляется cancelled_at.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("orders").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()"))

	if to == domain.OrderStatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	// Строка не обновилась: различаем отсутствие заказа и смену статуса
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}

	return nil, ErrStatusChanged
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var notes sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ServiceID,
		&order.ScheduledStart,
		&order.ScheduledEnd,
		&order.Status,
		&notes,
		&order.ServiceName,
		&order.ServicePriceCents,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.ScheduledStart = order.ScheduledStart.UTC()
	order.ScheduledEnd = order.ScheduledEnd.UTC()
	order.Notes = notes.String
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		order.CancelledAt = &t
	}
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}
