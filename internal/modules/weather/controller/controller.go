package controller

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

// DeliveryService is the part of service.Service the HTTP surface uses.
type DeliveryService interface {
	Summary(ctx context.Context) (types.DailySummary, error)
	Preview(ctx context.Context, w io.Writer) error
	Run(ctx context.Context, trigger types.Trigger) (types.Delivery, error)
	Deliveries(ctx context.Context, limit int) ([]types.Delivery, error)
}

type WeatherController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type weatherControllerImpl struct {
	service DeliveryService
	logger  *slog.Logger
}

func NewWeatherController(service DeliveryService, logger *slog.Logger) WeatherController {
	if logger == nil {
		logger = slog.Default()
	}
	return &weatherControllerImpl{service: service, logger: logger}
}

func (c *weatherControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /preview", c.handlePreview)
	mux.HandleFunc("GET /api/v1/summary", c.handleSummary)
	mux.HandleFunc("GET /api/v1/deliveries", c.handleListDeliveries)
	mux.HandleFunc("POST /api/v1/deliveries", c.handleCreateDelivery)
}
