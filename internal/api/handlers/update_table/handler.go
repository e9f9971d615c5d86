package update_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	"github.com/tablebook/reservation-service/internal/service/tables"
	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

const (
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgStaffOnly          = "требуется роль сотрудника"
	msgNotFound           = "стол не найден"
	msgInvalidTable       = "некорректные параметры стола"
	msgDuplicateNumber    = "номер стола уже используется"
)

type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/restaurants/{restaurantId}/tables/{tableId}
// Частичное обновление стола, доступно только сотрудникам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tableId из URL
	vars := mux.Vars(r)
	tableIDStr := vars["tableId"]

	tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Access denied: table_id=%d, user_id=%d",
			tableID, userID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	// Декодируем body
	var req models.UpdateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем стол
	table, err := h.service.UpdateTable(r.Context(), tableID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Invalid table: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondBadRequest(w, msgInvalidTable)

		case errors.Is(err, tables.ErrDuplicateTableNumber):
			h.logger.Warn("PATCH /restaurants/{id}/tables/{id} - Duplicate table number: table_id=%d", tableID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateNumber)

		default:
			h.logger.Error("PATCH /restaurants/{id}/tables/{id} - Failed to update table: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /restaurants/{id}/tables/{id} - Table updated successfully: table_id=%d, user_id=%d",
		tableID, userID)
	handlers.RespondJSON(w, http.StatusOK, table)
}
