package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	Upsert(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
