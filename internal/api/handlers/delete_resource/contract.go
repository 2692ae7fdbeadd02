package delete_resource

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type CatalogService interface {
	Delete(ctx context.Context, admin domain.AdminContext, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
