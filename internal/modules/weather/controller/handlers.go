package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/analysis"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/service"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
	"github.com/Ki-Sung/weather-email-service/internal/utils"
)

func (c *weatherControllerImpl) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.service.Summary(r.Context())
	if err != nil {
		c.writeUpstreamError(w, "summary", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (c *weatherControllerImpl) handlePreview(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.service.Preview(r.Context(), &buf); err != nil {
		c.writeUpstreamError(w, "preview", err)
		return
	}
	utils.WriteHTML(w, http.StatusOK, buf.Bytes())
}

func (c *weatherControllerImpl) handleListDeliveries(w http.ResponseWriter, r *http.Request) {
	limit, err := parseDeliveriesQuery(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	deliveries, err := c.service.Deliveries(r.Context(), limit)
	if err != nil {
		c.logger.Error("list deliveries failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load deliveries")
		return
	}
	utils.WriteJSON(w, http.StatusOK, deliveries)
}

// handleCreateDelivery runs a delivery synchronously. The run is detached from
// the request context so a client disconnect does not abort a half-sent mail.
func (c *weatherControllerImpl) handleCreateDelivery(w http.ResponseWriter, r *http.Request) {
	d, err := c.service.Run(context.WithoutCancel(r.Context()), types.TriggerManual)
	switch {
	case errors.Is(err, service.ErrRunInProgress):
		utils.WriteError(w, http.StatusConflict, err.Error())
	case err != nil:
		utils.WriteJSON(w, http.StatusBadGateway, map[string]any{
			"error":    http.StatusText(http.StatusBadGateway),
			"message":  err.Error(),
			"delivery": d,
		})
	default:
		utils.WriteJSON(w, http.StatusCreated, d)
	}
}

func (c *weatherControllerImpl) writeUpstreamError(w http.ResponseWriter, op string, err error) {
	c.logger.Error(op+" failed", "error", err)
	if errors.Is(err, analysis.ErrMissingWeatherData) {
		utils.WriteError(w, http.StatusBadGateway, "weather data unavailable")
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		utils.WriteError(w, http.StatusGatewayTimeout, "weather provider timed out")
		return
	}
	utils.WriteError(w, http.StatusBadGateway, "failed to load weather data")
}
