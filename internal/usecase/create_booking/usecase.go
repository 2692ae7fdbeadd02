package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/availability"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/HMS-ReservationService/internal/pricing"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	guestClient      GuestServiceClient
	txManager        TransactionManager
	capacityStatuses []domain.BookingStatus
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	guestClient GuestServiceClient,
	txManager TransactionManager,
	capacityStatuses []domain.BookingStatus,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		guestClient:      guestClient,
		txManager:        txManager,
		capacityStatuses: capacityStatuses,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: строки каталога и пересекающиеся позиции блокируются
// (FOR UPDATE), поэтому check-then-act гонка между конкурентными
// бронированиями исключена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, check_in=%s, check_out=%s, items=%d",
		req.UserID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Профиль гостя с graceful degradation: недоступность GuestService
	// не блокирует бронирование, профиль остаётся пустым
	var guestName, guestEmail *string
	guest, err := uc.guestClient.GetGuestWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking without guest profile for user=%d: %v", req.UserID, err)
	} else {
		guestName = &guest.Name
		guestEmail = &guest.Email
	}

	// 3. Позиции с разрешёнными датами
	items := buildItems(req)

	var result *domain.Booking

	// 4. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		total := 0.0

		for _, item := range items {
			// 4.1. Ресурс каталога; внутри транзакции строка блокируется
			resource, err := uc.catalogRepo.GetByID(txCtx, item.ResourceID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrResourceNotFound) {
					uc.logger.Warn("CreateBooking: resource id=%s not found", item.ResourceID)
					return fmt.Errorf("%w: id=%s", ErrResourceNotFound, item.ResourceID)
				}
				uc.logger.Error("CreateBooking: failed to get resource id=%s: %v", item.ResourceID, err)
				return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
			}

			if resource.Type != item.ResourceType {
				uc.logger.Warn("CreateBooking: resource id=%s has type %s, requested %s",
					item.ResourceID, resource.Type, item.ResourceType)
				return fmt.Errorf("%w: resource %s is %s, not %s",
					ErrInvalidInput, item.ResourceID, resource.Type, item.ResourceType)
			}

			// 4.2. Пересекающиеся позиции активных бронирований (FOR UPDATE)
			existing, err := uc.bookingRepo.GetOverlappingItems(txCtx, domain.LineItemFilter{
				ResourceType: item.ResourceType,
				ResourceID:   &item.ResourceID,
				From:         item.StartDate,
				To:           item.EndDate,
				Statuses:     uc.capacityStatuses,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get overlapping items for resource id=%s: %v",
					item.ResourceID, err)
				return fmt.Errorf("%w: failed to get overlapping items: %v", ErrInternal, err)
			}

			// Позиции этого же бронирования на тот же ресурс тоже занимают
			// ёмкость, хотя в БД их ещё нет
			existing = append(existing, pendingForResource(items, item)...)

			// 4.3. Посуточная проверка ёмкости
			days := availability.StayDays(item.ResourceType, item.StartDate, item.EndDate)

			check, err := availability.ValidateQuantity(resource.TotalInventory, item.Quantity, days, existing)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if !check.Valid {
				uc.logger.Warn("CreateBooking: %s for resource id=%s", check.Message, item.ResourceID)
				capErr := &CapacityError{
					ResourceID:   resource.ID,
					ResourceName: resource.Name,
					Remaining:    check.Remaining,
				}
				if check.BottleneckDay != nil {
					capErr.Day = *check.BottleneckDay
				}
				return capErr
			}

			// 4.4. Фиксируем стоимость позиции по текущей цене каталога
			item.Price = pricing.ItemSubtotal(item, resource.Price)
			total += item.Price
		}

		booking := &domain.Booking{
			UserID:     req.UserID,
			CheckIn:    availability.TruncateDay(req.CheckIn),
			CheckOut:   availability.TruncateDay(req.CheckOut),
			Status:     domain.StatusConfirmed,
			TotalPrice: pricing.Round2(total),
			GuestName:  guestName,
			GuestEmail: guestEmail,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking, items)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентное бронирование выиграло гонку сериализации
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("CreateBooking: serialization conflict for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrAvailabilityConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%s, user=%d, total=%.2f",
		result.ID, result.UserID, result.TotalPrice)

	return buildResponse(result, items), nil
}

// pendingForResource возвращает позиции этого же запроса на тот же ресурс,
// идущие раньше текущей — они уже прошли проверку, но ещё не вставлены
func pendingForResource(items []*domain.BookingItem, current *domain.BookingItem) []*domain.BookingItem {
	var pending []*domain.BookingItem
	for _, it := range items {
		if it == current {
			break
		}
		if it.ResourceID == current.ResourceID {
			pending = append(pending, it)
		}
	}
	return pending
}

// buildResponse собирает ответ из созданного бронирования и его позиций
func buildResponse(b *domain.Booking, items []*domain.BookingItem) *Response {
	respItems := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		respItems = append(respItems, ItemResponse{
			ID:           item.ID,
			ResourceType: item.ResourceType,
			ResourceID:   item.ResourceID,
			Quantity:     item.Quantity,
			Price:        item.Price,
			StartDate:    item.StartDate,
			EndDate:      item.EndDate,
		})
	}

	return &Response{
		ID:         b.ID,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		Items:      respItems,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
