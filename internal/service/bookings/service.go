package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-ReservationService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только своё бронирование, админ — любое.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, user domain.UserContext, admin *domain.AdminContext) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, user.UserID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != user.UserID && admin == nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", user.UserID, id)
		return nil, ErrAccessDenied
	}

	items, err := s.bookingRepo.GetItems(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get items for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, items), nil
}

// GetUserBookings получает историю бронирований пользователя,
// опционально фильтруя по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.User.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.User.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.bookingRepo.GetByUserID(ctx, req.User.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.User.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(list))}
	for _, b := range list {
		items, err := s.bookingRepo.GetItems(ctx, b.ID)
		if err != nil {
			s.logger.Error("GetUserBookings: failed to get items for booking id=%s: %v", b.ID, err)
			return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
		}
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b, items))
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(resp.Bookings), req.User.UserID)
	return resp, nil
}

// Cancel отменяет бронирование.
// Пользователь может отменить только своё бронирование, админ — любое.
// Отменённое бронирование перестаёт занимать ёмкость ресурсов.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", id, req.User.UserID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != req.User.UserID && req.Admin == nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%s", req.User.UserID, id)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%s", id)
	return nil
}

// UpdateStatus обновляет статус бронирования. Только для админов:
// capability в запросе конструируется исключительно админским middleware.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by admin=%d",
		id, req.Status, req.Admin.UserID)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	if _, err := s.getBooking(ctx, id); err != nil {
		return err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%s is now %s", id, status)
	return nil
}

// getBooking достаёт бронирование, маппя ошибки репозитория на ошибки сервиса
func (s *Service) getBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}
