package list_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	listAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/list_availability"
)

// ResourceAvailabilityResponse доступность одного ресурса на диапазон
type ResourceAvailabilityResponse struct {
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

	// Пиковая занятость по дням диапазона
	BookedCount int `json:"bookedCount"`

	// Гарантированный остаток на весь диапазон
	RemainingCount int `json:"remainingCount"`
}

// AvailabilityListResponse HTTP response model
type AvailabilityListResponse struct {
	Type      string                         `json:"type"`
	From      string                         `json:"from"`
	To        string                         `json:"to"`
	Resources []ResourceAvailabilityResponse `json:"resources"`
}

// ToUseCaseRequest парсит query-параметры в модель use case
func toUseCaseRequest(resourceType, fromStr, toStr string) (*listAvailability.Request, error) {
	rt, err := domain.ParseResourceType(resourceType)
	if err != nil {
		return nil, err
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &listAvailability.Request{Type: rt, From: from, To: to}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *listAvailability.Response) *AvailabilityListResponse {
	out := &AvailabilityListResponse{
		Type:      string(resp.Type),
		From:      resp.From.Format(domain.DateFormat),
		To:        resp.To.Format(domain.DateFormat),
		Resources: make([]ResourceAvailabilityResponse, 0, len(resp.Resources)),
	}

	for _, ra := range resp.Resources {
		r := ra.Resource
		item := ResourceAvailabilityResponse{
			ID:             r.ID,
			Type:           string(r.Type),
			Name:           r.Name,
			Description:    r.Description,
			Price:          r.Price,
			Capacity:       r.Capacity,
			TotalInventory: r.TotalInventory,
			ImageURL:       r.ImageURL,
			BookedCount:    ra.BookedCount,
			RemainingCount: ra.RemainingCount,
		}
		if r.StartTime != nil {
			s := r.StartTime.String()
			item.StartTime = &s
		}
		if r.EndTime != nil {
			s := r.EndTime.String()
			item.EndTime = &s
		}
		out.Resources = append(out.Resources, item)
	}

	return out
}

// emptyResponse ответ деградации: хранилище недоступно, но браузинг
// не должен падать — отдаем пустой список
func emptyResponse(resourceType, from, to string) *AvailabilityListResponse {
	return &AvailabilityListResponse{
		Type:      resourceType,
		From:      from,
		To:        to,
		Resources: []ResourceAvailabilityResponse{},
	}
}
