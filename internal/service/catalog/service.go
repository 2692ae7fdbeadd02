package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog/models"
)

// Service сервис управления каталогом ресурсов (номера, питание, активности)
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List возвращает все ресурсы указанного типа
func (s *Service) List(ctx context.Context, resourceType string) (*models.ResourceListResponse, error) {
	rt, err := domain.ParseResourceType(resourceType)
	if err != nil {
		s.logger.Warn("List: invalid resource type %q", resourceType)
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, resourceType)
	}

	resources, err := s.catalogRepo.List(ctx, rt)
	if err != nil {
		s.logger.Error("List: repository error for type=%s: %v", rt, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResourceList(resources), nil
}

// GetByID возвращает ресурс каталога по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ResourceResponse, error) {
	resource, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrResourceNotFound) {
			s.logger.Warn("GetByID: resource id=%s not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetByID: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResource(resource), nil
}

// Upsert создает или обновляет ресурс каталога. Только для админов.
func (s *Service) Upsert(ctx context.Context, admin domain.AdminContext, req *models.UpsertResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Upsert: admin=%d, type=%s, name=%q", admin.UserID, req.Type, req.Name)

	resource, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Upsert: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := resource.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.catalogRepo.Upsert(ctx, resource)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrResourceNotFound) {
			s.logger.Warn("Upsert: resource id=%s not found", resource.ID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved resource id=%s", saved.ID)
	return models.FromDomainResource(saved), nil
}

// Delete удаляет ресурс каталога. Только для админов.
// Существующие бронирования ресурса остаются в истории.
func (s *Service) Delete(ctx context.Context, admin domain.AdminContext, id uuid.UUID) error {
	s.logger.Info("Delete: admin=%d, resource id=%s", admin.UserID, id)

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrResourceNotFound) {
			s.logger.Warn("Delete: resource id=%s not found", id)
			return ErrResourceNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: removed resource id=%s", id)
	return nil
}
