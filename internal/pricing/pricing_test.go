package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

func date(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(date(1), date(4)))
	assert.Equal(t, 1, Nights(date(1), date(2)))

	// same-day and inverted ranges still charge one night
	assert.Equal(t, 1, Nights(date(2), date(2)))
	assert.Equal(t, 1, Nights(date(4), date(1)))
}

func TestItemSubtotal(t *testing.T) {
	room := &domain.BookingItem{
		ResourceType: domain.ResourceRoom,
		Quantity:     2,
		StartDate:    date(1),
		EndDate:      date(4),
	}
	assert.Equal(t, 600.0, ItemSubtotal(room, 100.0), "2 rooms x 3 nights x 100")

	meal := &domain.BookingItem{
		ResourceType: domain.ResourceMeal,
		Quantity:     3,
		StartDate:    date(2),
		EndDate:      date(2),
	}
	assert.Equal(t, 74.85, ItemSubtotal(meal, 24.95), "3 servings x 24.95")
}

func TestTotal(t *testing.T) {
	items := []*domain.BookingItem{
		{ResourceType: domain.ResourceRoom, Quantity: 1, StartDate: date(1), EndDate: date(3)},
		{ResourceType: domain.ResourceActivity, Quantity: 2, StartDate: date(2), EndDate: date(2)},
	}

	total := Total(items, []float64{150.0, 40.0})
	assert.Equal(t, 380.0, total, "2 nights x 150 + 2 x 40")
}
