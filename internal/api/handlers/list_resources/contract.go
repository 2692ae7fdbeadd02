package list_resources

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, resourceType string) (*models.ResourceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
