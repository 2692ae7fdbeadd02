package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// Ledger посуточный леджер занятости: resourceID -> день -> занятое количество.
// Строится заново под каждый запрос и нигде не сохраняется.
type Ledger map[uuid.UUID]map[string]int

// BuildLedger строит леджер по списку позиций для заданной последовательности
// дней. Количество позиции добавляется в (resourceID, day) только если её
// интервал покрывает день по правилу типа ресурса.
func BuildLedger(days []time.Time, items []*domain.BookingItem) Ledger {
	ledger := make(Ledger)

	for _, item := range items {
		for _, day := range days {
			if !CoversDay(item, day) {
				continue
			}
			dayMap, ok := ledger[item.ResourceID]
			if !ok {
				dayMap = make(map[string]int)
				ledger[item.ResourceID] = dayMap
			}
			dayMap[DayKey(day)] += item.Quantity
		}
	}

	return ledger
}

// BookedOn возвращает занятое количество ресурса на указанный день
func (l Ledger) BookedOn(resourceID uuid.UUID, day time.Time) int {
	return l[resourceID][DayKey(day)]
}

// MaxBooked возвращает МАКСИМУМ занятого количества по дням — снимок худшего
// дня, а не сумму по дням. Для однодневного интервала это просто занятость
// этого дня.
func (l Ledger) MaxBooked(resourceID uuid.UUID, days []time.Time) int {
	max := 0
	for _, day := range days {
		if booked := l.BookedOn(resourceID, day); booked > max {
			max = booked
		}
	}
	return max
}
