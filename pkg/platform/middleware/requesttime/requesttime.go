// Package requesttime captures one "now" per HTTP request so audit timestamps
// and mutation timestamps within a request agree.
package requesttime

import (
	"net/http"
	"time"

	"fes/pkg/requestcontext"
)

// Middleware stores the request start time (UTC) in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
