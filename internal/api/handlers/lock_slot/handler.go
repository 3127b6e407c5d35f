package lock_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	lockSlot "github.com/m04kA/SMC-SalonBooking/internal/usecase/lock_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotCapable    = "выбранный мастер не выполняет эту услугу"
	msgSlotLocked         = "слот уже удерживается другим клиентом"
	msgSlotTaken          = "выбранное время уже занято"
	msgSlotUnavailable    = "выбранное время недоступно для записи"
	msgLockTokenUsed      = "токен блокировки уже использован"
	msgConflict           = "сессия изменилась, повторите запрос"
	msgInvalidRequest     = "некорректные параметры слота: дата YYYY-MM-DD, время HH:MM"
)

type Handler struct {
	useCase LockSlotUseCase
	logger  Logger
}

func NewHandler(useCase LockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/lock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req LockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{token}/lock - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(token))
	if err != nil {
		if handlers.RespondSessionError(w, err, lockSlot.ErrSessionNotFound) {
			h.logger.Warn("POST /sessions/{token}/lock - Session rejected: %v", err)
			return
		}

		switch {
		case errors.Is(err, lockSlot.ErrServiceNotFound):
			h.logger.Warn("POST /sessions/{token}/lock - Service not found: service_id=%d", req.Slot.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, lockSlot.ErrStaffNotCapable):
			h.logger.Warn("POST /sessions/{token}/lock - Staff not capable: %v", err)
			handlers.RespondBadRequest(w, msgStaffNotCapable)

		case errors.Is(err, lockSlot.ErrSlotLocked):
			h.logger.Warn("POST /sessions/{token}/lock - Slot locked: date=%s, time=%s", req.Slot.Date, req.Slot.StartTime)
			handlers.RespondConflict(w, msgSlotLocked)

		case errors.Is(err, lockSlot.ErrSlotTaken):
			h.logger.Warn("POST /sessions/{token}/lock - Slot taken: date=%s, time=%s", req.Slot.Date, req.Slot.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, lockSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /sessions/{token}/lock - Slot unavailable: %v", err)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, lockSlot.ErrLockTokenUsed):
			h.logger.Warn("POST /sessions/{token}/lock - Lock token reused")
			handlers.RespondConflict(w, msgLockTokenUsed)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /sessions/{token}/lock - Conflict: %v", err)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, lockSlot.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{token}/lock - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /sessions/{token}/lock - Failed to lock slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/lock - Slot locked: date=%s, time=%s, refreshed=%t",
		req.Slot.Date, req.Slot.StartTime, result.Refreshed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
