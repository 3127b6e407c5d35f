package get_chain_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getChainSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_chain_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidRequest     = "некорректные параметры запроса: дата в формате YYYY-MM-DD и хотя бы одна группа услуг"
)

type Handler struct {
	useCase GetChainSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetChainSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/chain-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ChainSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{token}/chain-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(token))
	if err != nil {
		if handlers.RespondSessionError(w, err, getChainSlots.ErrSessionNotFound) {
			h.logger.Warn("POST /sessions/{token}/chain-slots - Session rejected: %v", err)
			return
		}

		switch {
		case errors.Is(err, getChainSlots.ErrServiceNotFound):
			h.logger.Warn("POST /sessions/{token}/chain-slots - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getChainSlots.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{token}/chain-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /sessions/{token}/chain-slots - Failed to search chains: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/chain-slots - Chains found for %d person(s) on %s", len(result.People), req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
