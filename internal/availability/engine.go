package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// ErrInvalidQuantity возвращается при неположительном запрошенном количестве.
// Это ошибка входных данных вызывающей стороны, а не нехватка ёмкости.
var ErrInvalidQuantity = errors.New("availability: requested quantity must be positive")

// MinRemaining вычисляет «бутылочное горлышко»: максимальное количество,
// которое ещё можно продать на КАЖДЫЙ день интервала одновременно.
//
// Для каждого дня: remaining = total - Σ quantity позиций, покрывающих день.
// Результат — минимум по дням, ограниченный снизу нулём: промежуточное
// значение может быть отрицательным (существующая переподписка — аномалия
// данных), но наружу отрицательный остаток не отдаётся.
//
// Пустая последовательность дней (нулевой или перевёрнутый интервал) —
// ограничений нет, результат равен total.
//
// Позиции должны относиться к одному ресурсу — фильтрация по resourceID
// выполняется на уровне выборки из хранилища.
func MinRemaining(total int, days []time.Time, items []*domain.BookingItem) int {
	minRemaining := total

	for _, day := range days {
		remaining := total - bookedOn(day, items)
		if remaining < minRemaining {
			minRemaining = remaining
		}
	}

	if minRemaining < 0 {
		return 0
	}
	return minRemaining
}

// ValidationResult результат строгой посуточной проверки бронирования
type ValidationResult struct {
	Valid         bool
	Message       string     // человекочитаемая причина отказа
	BottleneckDay *time.Time // первый день с нехваткой ёмкости
	Remaining     int        // остаток в этот день
}

// ValidateQuantity проверяет, что quantity единиц можно продать на каждый
// день интервала. Проверка останавливается на ПЕРВОМ дне с нехваткой —
// дальше сканировать незачем, бронирование в любом случае отклоняется.
//
// Используется непосредственно перед вставкой бронирования, внутри той же
// транзакции, по свежим данным (см. usecase/create_booking).
func ValidateQuantity(total, quantity int, days []time.Time, items []*domain.BookingItem) (ValidationResult, error) {
	if quantity <= 0 {
		return ValidationResult{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	for _, day := range days {
		remaining := total - bookedOn(day, items)
		if quantity > remaining {
			if remaining < 0 {
				remaining = 0
			}
			day := day
			return ValidationResult{
				Valid:         false,
				Message:       fmt.Sprintf("only %d units available on %s", remaining, day.Format(domain.DateFormat)),
				BottleneckDay: &day,
				Remaining:     remaining,
			}, nil
		}
	}

	return ValidationResult{Valid: true}, nil
}

// bookedOn суммирует количество позиций, покрывающих день
func bookedOn(day time.Time, items []*domain.BookingItem) int {
	booked := 0
	for _, item := range items {
		if CoversDay(item, day) {
			booked += item.Quantity
		}
	}
	return booked
}
