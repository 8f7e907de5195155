package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/repository"
)

func NewMux(db *sql.DB, repo repository.DeliveryRepository) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db, repo)
	return mux
}
