// Package availability реализует движок посуточной доступности инвентаря.
//
// Движок — чистое вычисление над данными, полученными из хранилища:
// он не делает I/O, не держит состояния между вызовами и безопасен для
// параллельного использования. Для каждого дня запрошенного интервала
// считается занятое количество; лимитирующим является день с наименьшим
// остатком («бутылочное горлышко»).
package availability

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// TruncateDay обнуляет время, оставляя только календарный день (UTC)
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey возвращает ключ дня для леджера
func DayKey(t time.Time) string {
	return TruncateDay(t).Format(domain.DateFormat)
}

// DaysInRange разворачивает интервал запроса в последовательность календарных
// дней, включая обе границы. Интервал запроса ВСЕГДА включительный —
// тип ресурса влияет только на покрытие позиций (см. CoversDay).
//
// Перевёрнутый интервал (from > to) разворачивается в пустую
// последовательность: ноль дней — ноль ограничений, полная доступность.
func DaysInRange(from, to time.Time) []time.Time {
	start := TruncateDay(from)
	end := TruncateDay(to)

	if start.After(end) {
		return nil
	}

	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StayDays разворачивает интервал САМОЙ позиции по правилу её типа ресурса.
// Используется при валидации нового бронирования: какие дни займёт позиция.
//
//   - room: ночи [from, to) — день выезда не занят;
//   - meal / activity: обе границы включительно (обычно from == to).
//
// Для номера с from == to (ноль ночей) результат пуст.
func StayDays(resourceType domain.ResourceType, from, to time.Time) []time.Time {
	if resourceType == domain.ResourceRoom {
		return DaysInRange(from, TruncateDay(to).AddDate(0, 0, -1))
	}
	return DaysInRange(from, to)
}

// CoversDay проверяет, занимает ли позиция указанный день.
// Правило границ зависит от типа ресурса:
//
//   - room: StartDate <= day < EndDate (день выезда свободен);
//   - meal / activity: StartDate <= day <= EndDate.
//
// Это правило должно применяться ОДИНАКОВО во всех путях запросов —
// расхождение даёт либо фантомную занятость в день выезда, либо
// недопродажу на один день.
func CoversDay(item *domain.BookingItem, day time.Time) bool {
	d := TruncateDay(day)
	start := TruncateDay(item.StartDate)
	end := TruncateDay(item.EndDate)

	if d.Before(start) {
		return false
	}
	if item.ResourceType == domain.ResourceRoom {
		return d.Before(end)
	}
	return !d.After(end)
}
