package httpapi

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/repository"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
	"github.com/Ki-Sung/weather-email-service/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	db         *sql.DB
	repository repository.DeliveryRepository
}

func NewHealthchecker(db *sql.DB, repo repository.DeliveryRepository) healthchecker {
	return &healthcheckerImpl{db: db, repository: repo}
}

type healthResponse struct {
	Status       string     `json:"status"`
	LastSentAt   *time.Time `json:"lastSentAt"`
	LastSubject  string     `json:"lastSubject,omitempty"`
	LastFailedAt *time.Time `json:"lastFailedAt"`
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("failed to check database connectivity", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to check database connectivity")
		return
	}

	resp := healthResponse{Status: "ok"}
	if d, ok := h.last(r, types.DeliverySent); ok {
		resp.LastSentAt = &d.FinishedAt
		resp.LastSubject = d.Subject
	}
	if d, ok := h.last(r, types.DeliveryFailed); ok {
		resp.LastFailedAt = &d.FinishedAt
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *healthcheckerImpl) last(r *http.Request, status types.DeliveryStatus) (types.Delivery, bool) {
	d, err := h.repository.LastDelivery(r.Context(), status)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("healthz: last delivery lookup failed", "status", string(status), "error", err)
		}
		return types.Delivery{}, false
	}
	return d, true
}

func registerHealthcheck(mux *http.ServeMux, db *sql.DB, repo repository.DeliveryRepository) {
	healthchecker := NewHealthchecker(db, repo)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
