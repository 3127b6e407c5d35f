package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	msgServiceNotFound = "услуга не найдена"
	msgInvalidRequest  = "некорректные параметры запроса: date (YYYY-MM-DD), serviceId и peopleCount обязательны"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{token}/availability
// Query params: date (required, YYYY-MM-DD), serviceId (required), peopleCount (optional, default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	useCaseReq := ToUseCaseRequest(token, r.URL.Query())

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondSessionError(w, err, getAvailableSlots.ErrSessionNotFound) {
			h.logger.Warn("GET /sessions/{token}/availability - Session rejected: %v", err)
			return
		}

		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /sessions/{token}/availability - Service not found: service_id=%d", useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /sessions/{token}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /sessions/{token}/availability - Failed to get slots: service_id=%d, error=%v", useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/{token}/availability - Slots retrieved: service_id=%d, date=%s, slots_count=%d",
		result.ServiceID, types.FormatDate(result.Date), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
