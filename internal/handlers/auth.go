package handlers

import (
	"context"

	"github.com/example/mataam/internal/rpc"
)

// AuthHandler exposes the session user.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) Register(r *rpc.Router) {
	rpc.Query(r, "auth.me", h.me)
}

// me returns the caller, or null for anonymous requests.
func (h *AuthHandler) me(_ context.Context, caller rpc.Caller, _ rpc.Empty) (any, error) {
	if caller.User == nil {
		return nil, nil
	}
	return caller.User, nil
}
