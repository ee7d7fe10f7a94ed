package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mycask-api/internal/model"
	"mycask-api/pkg/apierror"
)

// authenticator is the slice of the auth service the middleware needs.
type authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.User, error)
	RequireActive(user model.User) error
}

type contextKey string

const authUserContextKey contextKey = "auth_user"

type AuthMiddleware struct {
	auth authenticator
}

func NewAuthMiddleware(auth authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth resolves the bearer access token to a user record and stores
// it in the request context. The account may still be inactive; stack
// RequireActive on routes that need a live account.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, apierror.New("UNAUTHORIZED", "Could not validate credentials", "", http.StatusUnauthorized))
			return
		}

		token := strings.TrimSpace(header[7:])
		user, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), authUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireActive rejects authenticated requests whose account has been
// deactivated. A well-formed token for a disabled user is a 403, not a 401.
func (m *AuthMiddleware) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeAuthError(w, apierror.New("UNAUTHORIZED", "Could not validate credentials", "", http.StatusUnauthorized))
			return
		}

		if err := m.auth.RequireActive(user); err != nil {
			writeAuthError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(authUserContextKey).(model.User)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	body := &model.APIError{Code: "UNAUTHORIZED", Message: "Could not validate credentials"}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.ErrorResponse{Success: false, Error: body})
}
