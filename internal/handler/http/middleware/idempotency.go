package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hrpoint/attendance-backend-go/internal/handler/http/response"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/idempotency"
)

// InFlightGuard rejects a clock action while an identical one is still in
// flight for the same employee, and deduplicates retries that carry the same
// X-Request-ID. Clock actions are not idempotent, so this is the double-press
// protection the ledger itself does not provide.
func InFlightGuard(guard idempotency.Guard, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			employeeID, err := EmployeeIDFromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			key := employeeID + ":" + r.URL.Path
			// With a request token the claim outlives the request so a retry
			// of the same logical action is swallowed until the ttl expires.
			// Without one the claim is released on completion.
			requestID := r.Header.Get("X-Request-ID")
			if requestID != "" {
				key += ":" + requestID
			}

			ok, err := guard.Begin(r.Context(), key, ttl)
			if err != nil {
				// Fail open: a broken guard backend must not block clocking.
				slog.Warn("In-flight guard unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				response.Conflict(w, "This clock action is already being processed")
				return
			}
			if requestID == "" {
				defer func() {
					_ = guard.End(r.Context(), key)
				}()
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
