package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	createBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
)

// BookingItemRequest позиция бронирования в HTTP запросе
type BookingItemRequest struct {
	Type       string    `json:"type"`
	ResourceID uuid.UUID `json:"resourceId"`
	Quantity   int       `json:"quantity"`
	StartDate  *string   `json:"startDate,omitempty"` // "2026-07-01", по умолчанию даты брони
	EndDate    *string   `json:"endDate,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CheckIn  string               `json:"checkIn"`  // "2026-07-01"
	CheckOut string               `json:"checkOut"` // "2026-07-04"
	Items    []BookingItemRequest `json:"items"`
}

// BookingItemResponse позиция созданного бронирования
type BookingItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	ResourceID uuid.UUID `json:"resourceId"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         uuid.UUID             `json:"id"`
	UserID     int64                 `json:"userId"`
	CheckIn    string                `json:"checkIn"`
	CheckOut   string                `json:"checkOut"`
	Status     string                `json:"status"`
	TotalPrice float64               `json:"totalPrice"`
	GuestName  *string               `json:"guestName,omitempty"`
	GuestEmail *string               `json:"guestEmail,omitempty"`
	Items      []BookingItemResponse `json:"items"`
	CreatedAt  string                `json:"createdAt"`
	UpdatedAt  string                `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	items := make([]createBooking.ItemRequest, 0, len(r.Items))
	for _, ir := range r.Items {
		item := createBooking.ItemRequest{
			Type:       domain.ResourceType(ir.Type),
			ResourceID: ir.ResourceID,
			Quantity:   ir.Quantity,
		}

		if ir.StartDate != nil {
			start, err := time.Parse(domain.DateFormat, *ir.StartDate)
			if err != nil {
				return nil, err
			}
			item.StartDate = &start
		}
		if ir.EndDate != nil {
			end, err := time.Parse(domain.DateFormat, *ir.EndDate)
			if err != nil {
				return nil, err
			}
			item.EndDate = &end
		}

		items = append(items, item)
	}

	return &createBooking.Request{
		UserID:   userID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Items:    items,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		CheckIn:    resp.CheckIn.Format(domain.DateFormat),
		CheckOut:   resp.CheckOut.Format(domain.DateFormat),
		Status:     string(resp.Status),
		TotalPrice: resp.TotalPrice,
		GuestName:  resp.GuestName,
		GuestEmail: resp.GuestEmail,
		Items:      make([]BookingItemResponse, 0, len(resp.Items)),
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, item := range resp.Items {
		out.Items = append(out.Items, BookingItemResponse{
			ID:         item.ID,
			Type:       string(item.ResourceType),
			ResourceID: item.ResourceID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			StartDate:  item.StartDate.Format(domain.DateFormat),
			EndDate:    item.EndDate.Format(domain.DateFormat),
		})
	}

	return out
}
