package admin

import (
	"log/slog"
	"net/http"

	dErrors "fes/pkg/domain-errors"
	"fes/pkg/platform/httputil"
	"fes/pkg/requestcontext"
)

// HeaderAdminUser carries the already-authenticated admin identity.
const HeaderAdminUser = "x-admin-user"

// RequireAdminUser rejects requests without a non-empty x-admin-user header
// and stores the identity in the context for services.
func RequireAdminUser(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := r.Header.Get(HeaderAdminUser)
			if user == "" {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin user header missing",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "x-admin-user header is required"))
				return
			}

			ctx := requestcontext.WithAdminUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
