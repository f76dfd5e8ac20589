package api

import (
	"context"
	"net/http"

	"forum/internal/middleware"
)

// Pinger reports whether the persistence backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func SetupRoutes(graphqlHandler http.Handler, db Pinger) *http.ServeMux {
	router := http.NewServeMux()

	// GET serves GraphiQL, POST executes queries; both share the chain.
	router.Handle("/graphql", applyMiddleware(wrap(graphqlHandler)))
	router.Handle("GET /healthz", applyMiddleware(healthHandler(db)))

	return router
}

func applyMiddleware(h middleware.HandlerFunc) http.HandlerFunc {
	return middleware.ErrorHandler(
		middleware.LoggingMiddleware(h),
	)
}

func wrap(h http.Handler) middleware.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	}
}

func healthHandler(db Pinger) middleware.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := db.Ping(r.Context()); err != nil {
			return err
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status":"OK"}`))
		return err
	}
}
