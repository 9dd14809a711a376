package middleware

import (
	"net/http"
	"strings"

	pnet "robots/internal/platform/net"

	"github.com/google/uuid"
)

// maxRequestIDLen bounds inbound ids so clients cannot bloat every log line
const maxRequestIDLen = 128

// RequestID honours an inbound X-Request-ID or mints a uuid, stores it on the
// context for request scoped logging and echoes it on the response
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(pnet.HeaderRequestID))
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			w.Header().Set(pnet.HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
		})
	}
}
