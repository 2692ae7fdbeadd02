package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// Business validation constants
const (
	MaxItemsPerBooking          = 20
	MaxQuantityPerItem          = 100
	MaxCancellationReasonLength = 500
)
