package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mycask-api/internal/model"
	"mycask-api/pkg/apierror"
)

type stubAuthenticator struct {
	authenticateFn  func(ctx context.Context, token string) (model.User, error)
	requireActiveFn func(user model.User) error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (model.User, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthenticator) RequireActive(user model.User) error {
	if s.requireActiveFn != nil {
		return s.requireActiveFn(user)
	}
	return nil
}

func TestRequireAuth(t *testing.T) {
	activeUser := model.User{ID: 7, Email: "a@x.com", IsActive: true}

	mw := NewAuthMiddleware(&stubAuthenticator{
		authenticateFn: func(_ context.Context, token string) (model.User, error) {
			if token == "good-token" {
				return activeUser, nil
			}
			return model.User{}, apierror.New("UNAUTHORIZED", "Could not validate credentials", "", http.StatusUnauthorized)
		},
	})

	var captured model.User
	var capturedOK bool
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, capturedOK = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token reaches the handler with the user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, capturedOK)
		assert.Equal(t, activeUser.ID, captured.ID)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing and malformed headers are a 401", func(t *testing.T) {
		cases := []struct {
			name   string
			header string
		}{
			{"no header", ""},
			{"wrong scheme", "Basic dXNlcjpwYXNz"},
			{"bare token", "good-token"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
				if tc.header != "" {
					req.Header.Set("Authorization", tc.header)
				}
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				require.Equal(t, http.StatusUnauthorized, rec.Code)

				var parsed model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
				require.NotNil(t, parsed.Error)
				assert.Equal(t, "UNAUTHORIZED", parsed.Error.Code)
			})
		}
	})

	t.Run("rejected token is a 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireActive(t *testing.T) {
	mw := NewAuthMiddleware(&stubAuthenticator{
		authenticateFn: func(context.Context, string) (model.User, error) {
			t.Fatal("Authenticate must not be called by RequireActive")
			return model.User{}, nil
		},
		requireActiveFn: func(user model.User) error {
			if !user.IsActive {
				return apierror.New("FORBIDDEN", "Not authorized", "", http.StatusForbidden)
			}
			return nil
		},
	})

	handler := mw.RequireActive(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	withUser := func(req *http.Request, user model.User) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), authUserContextKey, user))
	}

	t.Run("active user passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withUser(req, model.User{ID: 1, IsActive: true}))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("inactive user is a 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withUser(req, model.User{ID: 2, IsActive: false}))

		require.Equal(t, http.StatusForbidden, rec.Code)

		var parsed model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
		require.NotNil(t, parsed.Error)
		assert.Equal(t, "FORBIDDEN", parsed.Error.Code)
	})

	t.Run("missing context user is a 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
