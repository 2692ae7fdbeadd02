package get_resource

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
