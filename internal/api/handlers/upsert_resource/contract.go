package upsert_resource

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	Upsert(ctx context.Context, admin domain.AdminContext, req *models.UpsertResourceRequest) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
