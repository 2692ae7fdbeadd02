package stats

import (
	"context"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/availability"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/pricing"
	"github.com/m04kA/HMS-ReservationService/internal/service/stats/models"
)

// Service сводная статистика для админской панели.
// Загрузка номерного фонда считается по реальной посуточной занятости,
// а не по количеству бронирований.
type Service struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	capacityStatuses []domain.BookingStatus
	windowDays       int
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса статистики.
// windowDays задаёт окно расчёта загрузки, начиная с текущего дня.
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	capacityStatuses []domain.BookingStatus,
	windowDays int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		capacityStatuses: capacityStatuses,
		windowDays:       windowDays,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetStats собирает сводную статистику
func (s *Service) GetStats(ctx context.Context, admin domain.AdminContext) (*models.StatsResponse, error) {
	s.logger.Info("GetStats: requested by admin=%d", admin.UserID)

	revenue, err := s.bookingRepo.SumRevenue(ctx, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("GetStats: failed to sum revenue: %v", err)
		return nil, fmt.Errorf("%w: failed to sum revenue: %v", ErrInternal, err)
	}

	confirmed, err := s.bookingRepo.CountByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("GetStats: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	guests, err := s.bookingRepo.CountDistinctGuests(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to count guests: %v", err)
		return nil, fmt.Errorf("%w: failed to count guests: %v", ErrInternal, err)
	}

	occupancy, err := s.occupancyRate(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to compute occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to compute occupancy: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		TotalRevenue:        revenue,
		ConfirmedBookings:   confirmed,
		TotalGuests:         guests,
		OccupancyRate:       occupancy,
		OccupancyWindowDays: s.windowDays,
	}, nil
}

// occupancyRate считает среднюю загрузку номерного фонда на окно
// [сегодня, сегодня + windowDays - 1] в процентах: сумма занятых
// номеро-дней к сумме доступных. Занятость дня ограничена ёмкостью
// ресурса, поэтому переподписка не даёт загрузку выше 100%.
func (s *Service) occupancyRate(ctx context.Context) (float64, error) {
	rooms, err := s.catalogRepo.List(ctx, domain.ResourceRoom)
	if err != nil {
		return 0, err
	}

	from := availability.TruncateDay(s.timeProvider.Now())
	to := from.AddDate(0, 0, s.windowDays-1)
	days := availability.DaysInRange(from, to)
	if len(days) == 0 || len(rooms) == 0 {
		return 0, nil
	}

	items, err := s.bookingRepo.GetOverlappingItems(ctx, domain.LineItemFilter{
		ResourceType: domain.ResourceRoom,
		From:         from,
		To:           to,
		Statuses:     s.capacityStatuses,
	})
	if err != nil {
		return 0, err
	}

	ledger := availability.BuildLedger(days, items)

	capacityDays := 0
	occupiedDays := 0
	for _, room := range rooms {
		capacityDays += room.TotalInventory * len(days)
		for _, day := range days {
			booked := ledger.BookedOn(room.ID, day)
			if booked > room.TotalInventory {
				booked = room.TotalInventory
			}
			occupiedDays += booked
		}
	}

	if capacityDays == 0 {
		return 0, nil
	}

	return pricing.Round2(float64(occupiedDays) / float64(capacityDays) * 100), nil
}
