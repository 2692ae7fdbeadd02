package create_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/availability"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: check_in and check_out are required", ErrInvalidInput)
	}

	checkIn := availability.TruncateDay(req.CheckIn)
	checkOut := availability.TruncateDay(req.CheckOut)
	if !checkIn.Before(checkOut) {
		return fmt.Errorf("%w: check_out must be after check_in", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: booking must contain at least one item", ErrInvalidInput)
	}
	if len(req.Items) > domain.MaxItemsPerBooking {
		return fmt.Errorf("%w: too many items, max %d", ErrInvalidInput, domain.MaxItemsPerBooking)
	}

	for i, item := range req.Items {
		if err := validateItem(&item); err != nil {
			return fmt.Errorf("%w (item %d)", err, i)
		}
	}

	return nil
}

// validateItem проверяет одну позицию бронирования
func validateItem(item *ItemRequest) error {
	if !item.Type.Valid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, string(item.Type))
	}

	if item.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resource_id is required", ErrInvalidInput)
	}

	if item.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if item.Quantity > domain.MaxQuantityPerItem {
		return fmt.Errorf("%w: quantity exceeds max %d", ErrInvalidInput, domain.MaxQuantityPerItem)
	}

	if item.StartDate != nil && item.EndDate != nil {
		start := availability.TruncateDay(*item.StartDate)
		end := availability.TruncateDay(*item.EndDate)
		if end.Before(start) {
			return fmt.Errorf("%w: item end_date is before start_date", ErrInvalidInput)
		}
	}

	return nil
}

// buildItems превращает запрос в доменные позиции с разрешёнными датами:
// отсутствующие даты позиции наследуются от интервала бронирования
func buildItems(req *Request) []*domain.BookingItem {
	checkIn := availability.TruncateDay(req.CheckIn)
	checkOut := availability.TruncateDay(req.CheckOut)

	items := make([]*domain.BookingItem, 0, len(req.Items))
	for _, ir := range req.Items {
		start := checkIn
		if ir.StartDate != nil {
			start = availability.TruncateDay(*ir.StartDate)
		}

		end := checkOut
		if ir.EndDate != nil {
			end = availability.TruncateDay(*ir.EndDate)
		}

		items = append(items, &domain.BookingItem{
			ResourceType: ir.Type,
			ResourceID:   ir.ResourceID,
			Quantity:     ir.Quantity,
			StartDate:    start,
			EndDate:      end,
		})
	}

	return items
}
