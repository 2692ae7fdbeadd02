// Package pricing contains the booking price arithmetic.
// Rooms are charged per night, meals and activities per unit.
package pricing

import (
	"math"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/availability"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// Nights returns the number of nights between check-in and check-out.
// Same-day and inverted ranges are charged as a single night.
func Nights(checkIn, checkOut time.Time) int {
	from := availability.TruncateDay(checkIn)
	to := availability.TruncateDay(checkOut)

	nights := int(to.Sub(from).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// ItemSubtotal returns the price of one line item given the current catalog
// price of its resource. Room items are charged per night of their own
// interval; meal and activity items are charged per unit.
func ItemSubtotal(item *domain.BookingItem, unitPrice float64) float64 {
	if item.ResourceType == domain.ResourceRoom {
		return Round2(unitPrice * float64(Nights(item.StartDate, item.EndDate)) * float64(item.Quantity))
	}
	return Round2(unitPrice * float64(item.Quantity))
}

// Total sums line item subtotals. prices maps item index to the catalog
// unit price resolved at booking time.
func Total(items []*domain.BookingItem, prices []float64) float64 {
	total := 0.0
	for i, item := range items {
		total += ItemSubtotal(item, prices[i])
	}
	return Round2(total)
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
