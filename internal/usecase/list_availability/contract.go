package list_availability

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlappingItems(ctx context.Context, filter domain.LineItemFilter) ([]*domain.BookingItem, error)
}

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
