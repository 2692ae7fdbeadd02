package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	createBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgResourceNotFound     = "ресурс не найден"
	msgAvailabilityConflict = "доступность изменилась, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capErr *createBooking.CapacityError

		switch {
		case errors.As(err, &capErr):
			h.logger.Warn("POST /bookings - Insufficient capacity: user_id=%d, resource_id=%s, day=%s, remaining=%d",
				user.UserID, capErr.ResourceID, capErr.Day.Format(domain.DateFormat), capErr.Remaining)
			handlers.RespondConflict(w, fmt.Sprintf("недостаточно мест: на %s доступно %d ед. ресурса %q",
				capErr.Day.Format(domain.DateFormat), capErr.Remaining, capErr.ResourceName))

		case errors.Is(err, createBooking.ErrAvailabilityConflict):
			h.logger.Warn("POST /bookings - Availability conflict: user_id=%d", user.UserID)
			handlers.RespondConflict(w, msgAvailabilityConflict)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: user_id=%d, error=%v", user.UserID, err)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", user.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", user.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, user_id=%d", result.ID, user.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
