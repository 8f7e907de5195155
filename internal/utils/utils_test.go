package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	t.Run("sets content-type and status", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSON(w, http.StatusAccepted, map[string]string{"key": "value"})

		if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
			t.Errorf("Content-Type = %q; want application/json; charset=utf-8", got)
		}
		if w.Code != http.StatusAccepted {
			t.Errorf("Code = %d; want %d", w.Code, http.StatusAccepted)
		}
	})

	t.Run("encodes slices", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSON(w, http.StatusOK, []int{1, 2})

		var got []int
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("body is not valid JSON: %v", err)
		}
		if len(got) != 2 || got[1] != 2 {
			t.Errorf("body = %v; want [1 2]", got)
		}
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusConflict, "delivery already in progress")

	if w.Code != http.StatusConflict {
		t.Errorf("Code = %d; want %d", w.Code, http.StatusConflict)
	}
	var got map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if got["error"] != http.StatusText(http.StatusConflict) {
		t.Errorf("error = %q; want %q", got["error"], http.StatusText(http.StatusConflict))
	}
	if got["message"] != "delivery already in progress" {
		t.Errorf("message = %q; want %q", got["message"], "delivery already in progress")
	}
}

func TestWriteHTML(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHTML(w, http.StatusOK, []byte("<p>hi</p>"))

	if got := w.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q; want text/html; charset=utf-8", got)
	}
	if w.Body.String() != "<p>hi</p>" {
		t.Errorf("body = %q; want <p>hi</p>", w.Body.String())
	}
}
