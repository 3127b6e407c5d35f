package get_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/sessions"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	session, err := h.service.Get(r.Context(), token)
	if err != nil {
		if handlers.RespondSessionError(w, err, sessions.ErrSessionNotFound) {
			h.logger.Warn("GET /sessions/{token} - Session rejected: %v", err)
			return
		}
		h.logger.Error("GET /sessions/{token} - Failed to get session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sessions/{token} - Session retrieved: salon_id=%d, state=%s", session.Salon.ID, session.State)
	handlers.RespondJSON(w, http.StatusOK, session)
}
