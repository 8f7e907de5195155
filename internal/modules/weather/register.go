package weather

import (
	"log/slog"
	"net/http"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/controller"
)

func RegisterFeature(mux *http.ServeMux, svc controller.DeliveryService, logger *slog.Logger) {
	weatherController := controller.NewWeatherController(svc, logger)
	weatherController.RegisterRoutes(mux)
}
