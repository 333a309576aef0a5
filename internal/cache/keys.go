package cache

// KeyCompanySettings returns the per-company cache key for the settings snapshot.
func KeyCompanySettings(companyID string) string {
	if companyID == "" {
		return "company:settings"
	}
	return companyID + ":company:settings"
}

// KeyAuthSubject returns the cache key mapping a token subject hash to a user id.
func KeyAuthSubject(subjectHash string) string {
	return "auth:subject:" + subjectHash
}
