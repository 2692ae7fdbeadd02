package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

var testResourceID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func item(rt domain.ResourceType, quantity, startDay, endDay int) *domain.BookingItem {
	return &domain.BookingItem{
		ID:           uuid.New(),
		ResourceType: rt,
		ResourceID:   testResourceID,
		Quantity:     quantity,
		StartDate:    day(startDay),
		EndDate:      day(endDay),
	}
}

func TestDaysInRange(t *testing.T) {
	t.Run("inclusive of both endpoints", func(t *testing.T) {
		days := DaysInRange(day(1), day(4))
		require.Len(t, days, 4)
		assert.Equal(t, day(1), days[0])
		assert.Equal(t, day(4), days[3])
	})

	t.Run("single day", func(t *testing.T) {
		days := DaysInRange(day(2), day(2))
		require.Len(t, days, 1)
		assert.Equal(t, day(2), days[0])
	})

	t.Run("reversed range expands to zero days", func(t *testing.T) {
		assert.Empty(t, DaysInRange(day(5), day(1)))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		from := time.Date(2026, time.January, 1, 23, 59, 0, 0, time.UTC)
		to := time.Date(2026, time.January, 2, 0, 1, 0, 0, time.UTC)
		days := DaysInRange(from, to)
		require.Len(t, days, 2)
	})
}

func TestStayDays(t *testing.T) {
	t.Run("room stay excludes checkout day", func(t *testing.T) {
		days := StayDays(domain.ResourceRoom, day(1), day(4))
		require.Len(t, days, 3)
		assert.Equal(t, day(3), days[2])
	})

	t.Run("zero-night room stay occupies nothing", func(t *testing.T) {
		assert.Empty(t, StayDays(domain.ResourceRoom, day(2), day(2)))
	})

	t.Run("meal stay includes both endpoints", func(t *testing.T) {
		days := StayDays(domain.ResourceMeal, day(2), day(2))
		require.Len(t, days, 1)
		assert.Equal(t, day(2), days[0])
	})
}

func TestCoversDay(t *testing.T) {
	t.Run("room does not occupy checkout day", func(t *testing.T) {
		roomItem := item(domain.ResourceRoom, 1, 1, 4)

		assert.True(t, CoversDay(roomItem, day(1)))
		assert.True(t, CoversDay(roomItem, day(3)))
		assert.False(t, CoversDay(roomItem, day(4)), "checkout day must be free for the next guest")
	})

	t.Run("single-day meal occupies exactly its day", func(t *testing.T) {
		mealItem := item(domain.ResourceMeal, 1, 2, 2)

		assert.False(t, CoversDay(mealItem, day(1)))
		assert.True(t, CoversDay(mealItem, day(2)))
		assert.False(t, CoversDay(mealItem, day(3)))
	})

	t.Run("activity end date is inclusive", func(t *testing.T) {
		actItem := item(domain.ResourceActivity, 1, 2, 3)

		assert.True(t, CoversDay(actItem, day(3)))
		assert.False(t, CoversDay(actItem, day(4)))
	})
}

func TestMinRemaining(t *testing.T) {
	tests := []struct {
		name  string
		total int
		from  int
		to    int
		items []*domain.BookingItem
		want  int
	}{
		{
			name:  "no bookings means full availability",
			total: 5,
			from:  1, to: 3,
			items: nil,
			want:  5,
		},
		{
			name:  "uniform booking reduces every day",
			total: 5,
			from:  1, to: 3,
			items: []*domain.BookingItem{item(domain.ResourceMeal, 2, 1, 3)},
			want:  3,
		},
		{
			name:  "interior bottleneck day drags whole range down",
			total: 5,
			from:  1, to: 4,
			items: []*domain.BookingItem{item(domain.ResourceMeal, 2, 2, 3)},
			want:  3,
		},
		{
			name:  "multiple overlapping items, per-day remaining [3,2,2,4]",
			total: 5,
			from:  1, to: 4,
			items: []*domain.BookingItem{
				item(domain.ResourceMeal, 2, 1, 3),
				item(domain.ResourceMeal, 1, 2, 4),
			},
			want: 2,
		},
		{
			name:  "full consumption on a single day forces zero",
			total: 5,
			from:  1, to: 3,
			items: []*domain.BookingItem{item(domain.ResourceMeal, 5, 2, 2)},
			want:  0,
		},
		{
			name:  "over-allocation clamps to zero, never negative",
			total: 5,
			from:  1, to: 1,
			items: []*domain.BookingItem{item(domain.ResourceMeal, 10, 1, 1)},
			want:  0,
		},
		{
			name:  "reversed range means no constraint",
			total: 5,
			from:  4, to: 1,
			items: []*domain.BookingItem{item(domain.ResourceMeal, 5, 1, 4)},
			want:  5,
		},
		{
			name:  "room item frees its checkout day",
			total: 2,
			from:  4, to: 4,
			items: []*domain.BookingItem{item(domain.ResourceRoom, 2, 1, 4)},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinRemaining(tt.total, DaysInRange(day(tt.from), day(tt.to)), tt.items)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinRemainingBounds(t *testing.T) {
	// Результат всегда в диапазоне [0, total]
	days := DaysInRange(day(1), day(7))
	items := []*domain.BookingItem{
		item(domain.ResourceMeal, 3, 1, 2),
		item(domain.ResourceMeal, 7, 4, 4),
		item(domain.ResourceMeal, 1, 6, 7),
	}

	for total := 0; total <= 10; total++ {
		got := MinRemaining(total, days, items)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, total)
	}
}

func TestMinRemainingMonotonicity(t *testing.T) {
	// Добавление позиции никогда не увеличивает результат
	days := DaysInRange(day(1), day(5))
	items := []*domain.BookingItem{}

	prev := MinRemaining(10, days, items)
	for i := 1; i <= 5; i++ {
		items = append(items, item(domain.ResourceMeal, 1, i, i))
		got := MinRemaining(10, days, items)
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
}

func TestBuildLedgerMaxBooked(t *testing.T) {
	// bookedCount — максимум по дням, а не сумма:
	// день 1: 2, день 2: 2+1=3, день 3: 1 => максимум 3, сумма была бы 6
	days := DaysInRange(day(1), day(3))
	items := []*domain.BookingItem{
		item(domain.ResourceMeal, 2, 1, 2),
		item(domain.ResourceMeal, 1, 2, 3),
	}

	ledger := BuildLedger(days, items)

	assert.Equal(t, 2, ledger.BookedOn(testResourceID, day(1)))
	assert.Equal(t, 3, ledger.BookedOn(testResourceID, day(2)))
	assert.Equal(t, 1, ledger.BookedOn(testResourceID, day(3)))
	assert.Equal(t, 3, ledger.MaxBooked(testResourceID, days))
}

func TestBuildLedgerUnknownResource(t *testing.T) {
	ledger := BuildLedger(DaysInRange(day(1), day(2)), nil)
	assert.Equal(t, 0, ledger.BookedOn(uuid.New(), day(1)))
	assert.Equal(t, 0, ledger.MaxBooked(uuid.New(), DaysInRange(day(1), day(2))))
}

func TestValidateQuantity(t *testing.T) {
	t.Run("rejects non-positive quantity outright", func(t *testing.T) {
		_, err := ValidateQuantity(5, 0, DaysInRange(day(1), day(2)), nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = ValidateQuantity(5, -3, DaysInRange(day(1), day(2)), nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("passes when every day has headroom", func(t *testing.T) {
		res, err := ValidateQuantity(5, 2,
			DaysInRange(day(1), day(3)),
			[]*domain.BookingItem{item(domain.ResourceMeal, 3, 1, 3)},
		)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("short-circuits on first violating day", func(t *testing.T) {
		// День 2 и день 3 оба нарушают; в результате должен быть день 2
		res, err := ValidateQuantity(5, 3,
			DaysInRange(day(1), day(4)),
			[]*domain.BookingItem{item(domain.ResourceMeal, 4, 2, 3)},
		)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		require.NotNil(t, res.BottleneckDay)
		assert.Equal(t, day(2), *res.BottleneckDay)
		assert.Equal(t, 1, res.Remaining)
		assert.Contains(t, res.Message, "only 1 units available on 2026-01-02")
	})

	t.Run("reports zero remaining on over-allocated day", func(t *testing.T) {
		res, err := ValidateQuantity(5, 1,
			DaysInRange(day(1), day(1)),
			[]*domain.BookingItem{item(domain.ResourceMeal, 10, 1, 1)},
		)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("new room booking on another checkout day passes", func(t *testing.T) {
		// Существующая позиция [1, 4): день 4 свободен.
		// Новое бронирование 4 -> 6 валидируется по дням [4, 6) = 4, 5.
		existing := []*domain.BookingItem{item(domain.ResourceRoom, 1, 1, 4)}
		res, err := ValidateQuantity(1, 1, StayDays(domain.ResourceRoom, day(4), day(6)), existing)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("empty day set means no capacity constraint", func(t *testing.T) {
		res, err := ValidateQuantity(0, 99, nil, nil)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})
}
