package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var resourceColumns = []string{
	"id",
	"type",
	"name",
	"description",
	"price",
	"capacity",
	"total_inventory",
	"start_time",
	"end_time",
	"image_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога ресурсов (номера, питание, активности)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все ресурсы указанного типа
func (r *Repository) List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"type": resourceType}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanResources(rows)
}

// GetByID получает ресурс по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): два конкурентных
// бронирования одного ресурса сериализуются на записи инвентаря и не могут
// оба увидеть состояние до вставки друг друга.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	resource, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	return resource, nil
}

// Upsert создает или обновляет ресурс каталога.
// Нулевой ID означает создание; БД генерирует идентификатор.
func (r *Repository) Upsert(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if resource.ID == uuid.Nil {
		query, args, err := psqlbuilder.Insert("resources").
			Columns("type", "name", "description", "price", "capacity",
				"total_inventory", "start_time", "end_time", "image_url").
			Values(resource.Type, resource.Name, resource.Description, resource.Price,
				resource.Capacity, resource.TotalInventory, resource.StartTime,
				resource.EndTime, resource.ImageURL).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
		}

		err = executor.QueryRowContext(ctx, query, args...).Scan(
			&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
		}
		return resource, nil
	}

	query, args, err := psqlbuilder.Update("resources").
		Set("name", resource.Name).
		Set("description", resource.Description).
		Set("price", resource.Price).
		Set("capacity", resource.Capacity).
		Set("total_inventory", resource.TotalInventory).
		Set("start_time", resource.StartTime).
		Set("end_time", resource.EndTime).
		Set("image_url", resource.ImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": resource.ID, "type": resource.Type}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&resource.CreatedAt, &resource.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute update: %v", ErrExecQuery, err)
	}

	return resource, nil
}

// Delete удаляет ресурс из каталога
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var resource domain.Resource
	var startTime, endTime types.TimeString

	err := row.Scan(
		&resource.ID,
		&resource.Type,
		&resource.Name,
		&resource.Description,
		&resource.Price,
		&resource.Capacity,
		&resource.TotalInventory,
		&startTime,
		&endTime,
		&resource.ImageURL,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !startTime.IsZero() {
		resource.StartTime = &startTime
	}
	if !endTime.IsZero() {
		resource.EndTime = &endTime
	}

	return &resource, nil
}

func scanResources(rows *sql.Rows) ([]*domain.Resource, error) {
	resources := make([]*domain.Resource, 0)

	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanResources - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanResources - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}
