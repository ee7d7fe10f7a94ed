package handler

import (
	"net/http"

	"mycask-api/internal/middleware"
	"mycask-api/pkg/apierror"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the authenticated caller's own record. The auth middleware has
// already resolved the token and checked the active flag.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "Could not validate credentials", "", http.StatusUnauthorized))
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
