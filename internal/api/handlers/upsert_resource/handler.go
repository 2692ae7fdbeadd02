package upsert_resource

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "ресурс не найден"
	msgAdminOnly          = "требуются права администратора"
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

// Handle PUT /api/v1/admin/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	if admin == nil {
		h.logger.Warn("PUT /admin/resources - Missing admin context")
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req models.UpsertResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), *admin, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrResourceNotFound):
			h.logger.Warn("PUT /admin/resources - Resource not found: id=%v", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/resources - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/resources - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if req.ID == nil {
		status = http.StatusCreated
	}

	h.logger.Info("PUT /admin/resources - Resource saved: id=%s, admin=%d", result.ID, admin.UserID)
	handlers.RespondJSON(w, status, result)
}
