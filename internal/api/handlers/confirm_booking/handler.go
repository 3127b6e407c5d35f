package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidContacts    = "имя и телефон обязательны, email должен быть корректным"
	msgNoSlotSelected     = "слот не выбран"
	msgLockExpired        = "время удержания слота истекло, выберите слот заново"
	msgSlotTaken          = "выбранное время уже занято"
	msgServiceUnavailable = "услуга больше недоступна"
	msgConflict           = "сессия изменилась, повторите запрос"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{token}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(token))
	if err != nil {
		// Истекшая блокировка тоже относится к виду Expired, проверяем её до ошибок сессии
		if errors.Is(err, confirmBooking.ErrLockExpired) {
			h.logger.Warn("POST /sessions/{token}/confirm - Lock expired")
			handlers.RespondGone(w, msgLockExpired)
			return
		}
		if handlers.RespondSessionError(w, err, confirmBooking.ErrSessionNotFound) {
			h.logger.Warn("POST /sessions/{token}/confirm - Session rejected: %v", err)
			return
		}

		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{token}/confirm - Invalid contacts: %v", err)
			handlers.RespondBadRequest(w, msgInvalidContacts)

		case errors.Is(err, domain.ErrNoSlotSelected):
			h.logger.Warn("POST /sessions/{token}/confirm - No slot selected")
			handlers.RespondConflict(w, msgNoSlotSelected)

		case errors.Is(err, confirmBooking.ErrSlotTaken):
			h.logger.Warn("POST /sessions/{token}/confirm - Slot taken: %v", err)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, confirmBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /sessions/{token}/confirm - Service unavailable: %v", err)
			handlers.RespondConflict(w, msgServiceUnavailable)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /sessions/{token}/confirm - Conflict: %v", err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /sessions/{token}/confirm - Failed to confirm booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/confirm - Booking confirmed: customer_id=%d, appointments=%d",
		result.Customer.ID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
