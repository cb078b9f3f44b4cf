package handlers

import (
	"context"

	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/services"
)

// ReservationHandler manages table reservations.
type ReservationHandler struct {
	deps Deps
}

func NewReservationHandler(d Deps) *ReservationHandler {
	return &ReservationHandler{deps: d}
}

func (h *ReservationHandler) Register(r *rpc.Router) {
	rpc.Query(r, "reservations.list", h.list, rpc.AdminOnly())
	rpc.Mutation(r, "reservations.create", h.create)
	rpc.Mutation(r, "reservations.update", h.update, rpc.AdminOnly())
	rpc.Mutation(r, "reservations.delete", h.delete, rpc.AdminOnly(), rpc.Validate("required"))
}

type updateReservationInput struct {
	ID     uint    `json:"id" validate:"required"`
	Status *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes  *string `json:"notes"`
}

func (h *ReservationHandler) list(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.ListReservations(ctx)
}

func (h *ReservationHandler) create(ctx context.Context, _ rpc.Caller, in services.ReservationInput) (any, error) {
	return h.deps.Reservations.Create(ctx, in)
}

func (h *ReservationHandler) update(ctx context.Context, _ rpc.Caller, in updateReservationInput) (any, error) {
	reservation, err := h.deps.Reservations.Update(ctx, in.ID, services.ReservationUpdate{Status: in.Status, Notes: in.Notes})
	if err != nil {
		return nil, clientError(err)
	}
	return reservation, nil
}

func (h *ReservationHandler) delete(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	return nil, h.deps.Store.DeleteReservation(ctx, id)
}
