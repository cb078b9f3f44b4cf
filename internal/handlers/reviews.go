package handlers

import (
	"context"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
)

// ReviewHandler manages customer reviews. An order may receive any number of
// reviews.
type ReviewHandler struct {
	deps Deps
}

func NewReviewHandler(d Deps) *ReviewHandler {
	return &ReviewHandler{deps: d}
}

func (h *ReviewHandler) Register(r *rpc.Router) {
	rpc.Query(r, "reviews.list", h.list, rpc.AdminOnly())
	rpc.Query(r, "reviews.getByOrder", h.getByOrder, rpc.Validate("required"))
	rpc.Mutation(r, "reviews.create", h.create)
}

type createReviewInput struct {
	OrderID   uint   `json:"order_id" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	CommentAr string `json:"comment_ar"`
	CommentEn string `json:"comment_en"`
	CommentFr string `json:"comment_fr"`
}

func (h *ReviewHandler) list(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.ListReviews(ctx)
}

func (h *ReviewHandler) getByOrder(ctx context.Context, _ rpc.Caller, orderID uint) (any, error) {
	return h.deps.Store.ListReviewsByOrder(ctx, orderID)
}

func (h *ReviewHandler) create(ctx context.Context, _ rpc.Caller, in createReviewInput) (any, error) {
	review := &models.Review{
		OrderID:   in.OrderID,
		Rating:    in.Rating,
		CommentAr: in.CommentAr,
		CommentEn: in.CommentEn,
		CommentFr: in.CommentFr,
	}
	if err := h.deps.Store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
