package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/guestservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, items []*domain.BookingItem) (*domain.Booking, error)
	GetOverlappingItems(ctx context.Context, filter domain.LineItemFilter) ([]*domain.BookingItem, error)
}

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
}

// GuestServiceClient интерфейс клиента для GuestService
type GuestServiceClient interface {
	GetGuestWithGracefulDegradation(ctx context.Context, userID int64) (*guestservice.Guest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
