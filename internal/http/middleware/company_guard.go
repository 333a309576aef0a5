package middleware

import (
	"context"
	"net/http"

	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
)

// RequireCompany ensures a company identifier exists in the request context.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := company.From(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"COMPANY_REQUIRED","message":"company is required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminQuerier is the role lookup the admin guard depends on.
type AdminQuerier interface {
	IsCompanyAdmin(ctx context.Context, arg dbgen.IsCompanyAdminParams) (bool, error)
}

// RequireCompanyAdmin enforces that the caller administers the resolved company.
func RequireCompanyAdmin(q AdminQuerier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			companyID, ok := company.From(r.Context())
			if !ok {
				common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
				return
			}
			userID, ok := common.UserID(r.Context())
			if !ok {
				common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
				return
			}
			if q == nil {
				common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "admin guard not configured", nil)
				return
			}
			cID, err := common.ToUUID(companyID)
			if err != nil {
				common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
				return
			}
			uID, err := common.ToUUID(userID)
			if err != nil {
				common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
				return
			}
			isAdmin, err := q.IsCompanyAdmin(r.Context(), dbgen.IsCompanyAdminParams{CompanyID: cID, UserID: uID})
			if err != nil {
				common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "admin lookup failed", nil)
				return
			}
			if !isAdmin {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "admin access required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
