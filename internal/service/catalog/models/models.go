package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

var (
	// ErrInvalidType возвращается при неизвестном типе ресурса
	ErrInvalidType = errors.New("invalid resource type")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")
)

// Request модели

// UpsertResourceRequest запрос на создание или обновление ресурса каталога.
// Пустой ID означает создание нового ресурса.
type UpsertResourceRequest struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	Type           string     `json:"type"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	Price          float64    `json:"price"`
	Capacity       int        `json:"capacity"`
	TotalInventory int        `json:"totalInventory"`
	StartTime      *string    `json:"startTime,omitempty"` // "10:00", только для активностей
	EndTime        *string    `json:"endTime,omitempty"`
	ImageURL       *string    `json:"imageUrl,omitempty"`
}

// ToDomain конвертирует запрос в доменную модель
func (r *UpsertResourceRequest) ToDomain() (*domain.Resource, error) {
	resourceType, err := domain.ParseResourceType(r.Type)
	if err != nil {
		return nil, ErrInvalidType
	}

	res := &domain.Resource{
		Type:           resourceType,
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Capacity:       r.Capacity,
		TotalInventory: r.TotalInventory,
		ImageURL:       r.ImageURL,
	}
	if r.ID != nil {
		res.ID = *r.ID
	}

	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		res.StartTime = &ts
	}
	if r.EndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		res.EndTime = &ts
	}

	return res, nil
}

// Response модели

// ResourceResponse ответ с данными ресурса каталога
type ResourceResponse struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	Price          float64   `json:"price"`
	Capacity       int       `json:"capacity"`
	TotalInventory int       `json:"totalInventory"`
	StartTime      *string   `json:"startTime,omitempty"`
	EndTime        *string   `json:"endTime,omitempty"`
	ImageURL       *string   `json:"imageUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// Методы конвертации

// FromDomainResource конвертирует доменную модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	resp := &ResourceResponse{
		ID:             r.ID,
		Type:           string(r.Type),
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Capacity:       r.Capacity,
		TotalInventory: r.TotalInventory,
		ImageURL:       r.ImageURL,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if r.StartTime != nil {
		s := r.StartTime.String()
		resp.StartTime = &s
	}
	if r.EndTime != nil {
		s := r.EndTime.String()
		resp.EndTime = &s
	}

	return resp
}

// FromDomainResourceList конвертирует список доменных моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}
	for _, r := range resources {
		if dto := FromDomainResource(r); dto != nil {
			resp.Resources = append(resp.Resources, *dto)
		}
	}
	return resp
}
