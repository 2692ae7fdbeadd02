package models

// StatsResponse сводная статистика для админской панели
type StatsResponse struct {
	// Суммарная стоимость подтверждённых бронирований
	TotalRevenue float64 `json:"totalRevenue"`

	// Количество подтверждённых бронирований
	ConfirmedBookings int64 `json:"confirmedBookings"`

	// Количество уникальных гостей за всё время
	TotalGuests int64 `json:"totalGuests"`

	// Средняя загрузка номерного фонда на окно, в процентах
	OccupancyRate float64 `json:"occupancyRate"`

	// Размер окна расчёта загрузки в днях, начиная с сегодняшнего
	OccupancyWindowDays int `json:"occupancyWindowDays"`
}
