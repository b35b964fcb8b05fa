package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey holds the request id in the request context.
const requestIDKey ctxKey = "request_id"

// RequestIDHeader is the response header carrying the request id.
const RequestIDHeader = "X-Request-Id"

// RequestIDFromContext returns the request id assigned by RequestID,
// or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

// RequestID assigns every request a UUID, echoes it in the X-Request-Id
// response header and stores it in the context for the request logger.
// An id supplied by the client is kept as is.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
