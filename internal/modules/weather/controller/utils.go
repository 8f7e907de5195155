package controller

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	defaultDeliveriesLimit = 20
	maxDeliveriesLimit     = 200
)

func parseDeliveriesQuery(r *http.Request) (limit int, err error) {
	limit = defaultDeliveriesLimit
	s := r.URL.Query().Get("limit")
	if s == "" {
		return limit, nil
	}
	n, convErr := strconv.Atoi(s)
	if convErr != nil {
		return 0, errors.New("invalid 'limit' (expected integer)")
	}
	if n <= 0 {
		return 0, errors.New("'limit' must be > 0")
	}
	if n > maxDeliveriesLimit {
		return 0, errors.New("'limit' must be <= " + strconv.Itoa(maxDeliveriesLimit))
	}
	return n, nil
}
