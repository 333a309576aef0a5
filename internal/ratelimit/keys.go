package ratelimit

import (
	"net/http"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
)

// KeyByCompanyOrIP derives a limiter key from the resolved company, falling
// back to the client IP for requests outside any company scope. The calling
// user is appended when known so one heavy uploader cannot starve teammates.
func KeyByCompanyOrIP(r *http.Request) string {
	key, ok := company.From(r.Context())
	if !ok {
		key = "ip:" + common.ClientIP(r)
	}
	if userID, ok := common.UserID(r.Context()); ok {
		key = key + ":" + userID
	}
	return key
}
