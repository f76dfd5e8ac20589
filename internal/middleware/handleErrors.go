package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	customerrors "forum/internal/customErrors"
)

// HandlerFunc lets route handlers return errors instead of writing failure
// responses themselves. ErrorHandler is the outermost layer of the chain and
// owns the error-to-JSON translation.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func ErrorHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status := customerrors.GetStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		}

		writeError(w, status, customerrors.GetMessage(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := &customerrors.Error{Code: status, Message: message}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
