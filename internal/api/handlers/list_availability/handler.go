package list_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	listAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/list_availability"
)

const (
	msgInvalidQuery = "некорректные параметры запроса: ожидаются type, from=YYYY-MM-DD, to=YYYY-MM-DD"
)

type Handler struct {
	useCase ListAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?type=room&from=2026-07-01&to=2026-07-04
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typeStr := q.Get("type")
	fromStr := q.Get("from")
	toStr := q.Get("to")

	req, err := toUseCaseRequest(typeStr, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, listAvailability.ErrStorageUnavailable):
			// Деградация браузинга: пустой список вместо 5xx
			h.logger.Error("GET /availability - Storage unavailable, degrading to empty list: %v", err)
			handlers.RespondJSON(w, http.StatusOK, emptyResponse(typeStr, fromStr, toStr))

		default:
			h.logger.Error("GET /availability - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
