package list_resources

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog"
)

const (
	msgInvalidType = "некорректный тип ресурса, ожидается room, meal или activity"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources?type=room
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("type")

	result, err := h.service.List(r.Context(), resourceType)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /resources - Invalid type: %q", resourceType)
			handlers.RespondBadRequest(w, msgInvalidType)

		default:
			h.logger.Error("GET /resources - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
