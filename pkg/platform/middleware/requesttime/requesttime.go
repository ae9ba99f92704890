// Package requesttime stamps each request with the time it arrived so every
// layer handling it observes the same "now".
package requesttime

import (
	"net/http"
	"time"

	"georef/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
