package handlers

import (
	"context"

	"github.com/example/mataam/internal/rpc"
)

// DashboardHandler serves back-office statistics.
type DashboardHandler struct {
	deps Deps
}

func NewDashboardHandler(d Deps) *DashboardHandler {
	return &DashboardHandler{deps: d}
}

func (h *DashboardHandler) Register(r *rpc.Router) {
	rpc.Query(r, "dashboard.stats", h.stats, rpc.AdminOnly())
}

func (h *DashboardHandler) stats(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.Dashboard(ctx, h.deps.Now())
}
