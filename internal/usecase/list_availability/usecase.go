package list_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/availability"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// UseCase use case для просмотра доступности ресурсов на диапазон дат
type UseCase struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	capacityStatuses []domain.BookingStatus
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	capacityStatuses []domain.BookingStatus,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		capacityStatuses: capacityStatuses,
		logger:           logger,
	}
}

// Execute выполняет use case просмотра доступности.
// Для каждого ресурса запрошенного типа считает пиковую занятость и
// гарантированный остаток по дням диапазона [From, To].
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListAvailability: type=%s, from=%s, to=%s",
		req.Type, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListAvailability: validation failed: %v", err)
		return nil, err
	}

	from := availability.TruncateDay(req.From)
	to := availability.TruncateDay(req.To)

	// 2. Получаем ресурсы запрошенного типа
	resources, err := uc.catalogRepo.List(ctx, req.Type)
	if err != nil {
		uc.logger.Error("ListAvailability: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrStorageUnavailable, err)
	}

	// 3. Дни диапазона. Перевёрнутый диапазон -> ноль дней, занятость
	// нулевая и остаток равен полной ёмкости.
	days := availability.DaysInRange(from, to)

	// 4. Позиции бронирований, пересекающие диапазон
	var items []*domain.BookingItem
	if len(days) > 0 {
		items, err = uc.bookingRepo.GetOverlappingItems(ctx, domain.LineItemFilter{
			ResourceType: req.Type,
			From:         from,
			To:           to,
			Statuses:     uc.capacityStatuses,
		})
		if err != nil {
			uc.logger.Error("ListAvailability: failed to get booking items: %v", err)
			return nil, fmt.Errorf("%w: failed to get booking items: %v", ErrStorageUnavailable, err)
		}
	}

	// 5. Считаем занятость по дням и остатки
	ledger := availability.BuildLedger(days, items)

	result := make([]ResourceAvailability, 0, len(resources))
	for _, res := range resources {
		booked := ledger.MaxBooked(res.ID, days)
		remaining := res.TotalInventory - booked
		if remaining < 0 {
			remaining = 0
		}

		result = append(result, ResourceAvailability{
			Resource:       res,
			BookedCount:    booked,
			RemainingCount: remaining,
		})
	}

	uc.logger.Info("ListAvailability: type=%s, resources=%d, items=%d, days=%d",
		req.Type, len(result), len(items), len(days))

	return &Response{
		Type:      req.Type,
		From:      from,
		To:        to,
		Resources: result,
	}, nil
}
