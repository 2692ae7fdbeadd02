package delete_resource

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgNotFound          = "ресурс не найден"
	msgAdminOnly         = "требуются права администратора"
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

// Handle DELETE /api/v1/admin/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("DELETE /admin/resources/{id} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	admin := middleware.GetAdmin(r.Context())
	if admin == nil {
		h.logger.Warn("DELETE /admin/resources/{id} - Missing admin context")
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	if err := h.service.Delete(r.Context(), *admin, resourceID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrResourceNotFound):
			h.logger.Warn("DELETE /admin/resources/{id} - Not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/resources/{id} - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/resources/{id} - Resource deleted: resource_id=%s, admin=%d",
		resourceID, admin.UserID)
	w.WriteHeader(http.StatusNoContent)
}
