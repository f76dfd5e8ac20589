package middleware

import (
	"log"
	"net/http"
	"time"

	customerrors "forum/internal/customErrors"
)

// LoggingMiddleware writes one line per request. Nearly all traffic shares
// the /graphql path, so the outcome and duration carry the signal rather
// than the route.
func LoggingMiddleware(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		start := time.Now()

		err := next(w, r)
		if err != nil {
			log.Printf("%s %s from %s | %d %q | %v",
				r.Method, r.URL.Path, r.RemoteAddr,
				customerrors.GetStatus(err), customerrors.GetMessage(err),
				time.Since(start))
			return err
		}

		log.Printf("%s %s from %s | OK | %v",
			r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
		return nil
	}
}
