package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/studylog-backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns each request a correlation ID. An inbound X-Request-Id
// header is honored; otherwise a fresh UUID is generated. The ID is stored
// in the context and echoed back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
