package admin_stats

import (
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
)

const (
	msgAdminOnly = "требуются права администратора"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	if admin == nil {
		h.logger.Warn("GET /admin/stats - Missing admin context")
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	result, err := h.service.GetStats(r.Context(), *admin)
	if err != nil {
		h.logger.Error("GET /admin/stats - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
