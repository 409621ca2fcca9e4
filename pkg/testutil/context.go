package testutil

import (
	"net/http"
	"time"

	"fes/pkg/platform/middleware/admin"
	"fes/pkg/requestcontext"
)

// AsAdmin sets the admin identity header that the admin middleware reads.
func AsAdmin(req *http.Request, user string) *http.Request {
	req.Header.Set(admin.HeaderAdminUser, user)
	return req
}

// AtTime pins the request clock, as the request-time middleware would.
func AtTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
