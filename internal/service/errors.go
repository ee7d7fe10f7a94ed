package service

import (
	"net/http"

	"mycask-api/pkg/apierror"
)

// Caller-facing error taxonomy. Constructors return a fresh value per call
// so handlers can never observe shared state, but code and message for a
// given kind are always byte-identical: login deliberately reports unknown
// email and wrong password with the same error.
func errDuplicateEmail() *apierror.APIError {
	return apierror.New("DUPLICATE_EMAIL", "Email already registered", "", http.StatusBadRequest)
}

func errDuplicateUsername() *apierror.APIError {
	return apierror.New("DUPLICATE_USERNAME", "Username already taken", "", http.StatusBadRequest)
}

func errDuplicateConflict() *apierror.APIError {
	return apierror.New("DUPLICATE_CONFLICT", "Registration failed due to data conflict", "", http.StatusBadRequest)
}

func errWeakPassword(reason string) *apierror.APIError {
	return apierror.New("WEAK_PASSWORD", reason, "", http.StatusBadRequest)
}

func errRegistrationFailed() *apierror.APIError {
	return apierror.Opaque("REGISTRATION_FAILED", "Registration failed due to unexpected error")
}

func errInvalidCredentials() *apierror.APIError {
	return apierror.New("INVALID_CREDENTIALS", "Incorrect email or password", "", http.StatusUnauthorized)
}

func errInactiveAccount() *apierror.APIError {
	return apierror.New("INACTIVE_ACCOUNT", "User account is inactive", "", http.StatusForbidden)
}

func errInvalidRefreshToken() *apierror.APIError {
	return apierror.New("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired", "", http.StatusUnauthorized)
}

func errRefreshFailed() *apierror.APIError {
	return apierror.Opaque("REFRESH_FAILED", "Token refresh failed due to unexpected error")
}

func errUnauthenticated() *apierror.APIError {
	return apierror.New("UNAUTHORIZED", "Could not validate credentials", "", http.StatusUnauthorized)
}

func errForbidden() *apierror.APIError {
	return apierror.New("FORBIDDEN", "Not authorized", "", http.StatusForbidden)
}
