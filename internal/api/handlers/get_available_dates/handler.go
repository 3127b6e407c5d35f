package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_dates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRangeTooLong       = "период не должен превышать 62 дня"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidRequest     = "некорректные параметры запроса: даты в формате YYYY-MM-DD и хотя бы одна группа услуг"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req DatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{token}/dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(token))
	if err != nil {
		if handlers.RespondSessionError(w, err, getAvailableDates.ErrSessionNotFound) {
			h.logger.Warn("POST /sessions/{token}/dates - Session rejected: %v", err)
			return
		}

		switch {
		case errors.Is(err, getAvailableDates.ErrRangeTooLong):
			h.logger.Warn("POST /sessions/{token}/dates - Range too long: %s..%s", req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("POST /sessions/{token}/dates - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{token}/dates - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /sessions/{token}/dates - Failed to check dates: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/dates - Dates checked: available=%d, unavailable=%d",
		len(result.AvailableDates), len(result.UnavailableDates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
