// Package handlers registers the procedures of each entity group on the rpc
// router.
package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mataam/internal/cache"
	"github.com/example/mataam/internal/cart"
	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/services"
	"github.com/example/mataam/internal/store"
)

// Deps are the collaborators shared by all procedure groups.
type Deps struct {
	Store            *store.Store
	Cache            cache.Cache
	CacheTTL         time.Duration
	Orders           *services.OrderService
	Coupons          *services.CouponService
	Reservations     *services.ReservationService
	QR               services.QRGenerator
	Carts            *cart.Store
	SettingsDefaults map[string]string
	Now              func() time.Time
}

// Register adds every procedure group to r.
func Register(r *rpc.Router, d Deps) {
	if d.Cache == nil {
		d.Cache = cache.NewMemory()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	NewAuthHandler().Register(r)
	NewCategoryHandler(d).Register(r)
	NewMenuItemHandler(d).Register(r)
	NewDeliveryZoneHandler(d).Register(r)
	NewOrderHandler(d).Register(r)
	NewCouponHandler(d).Register(r)
	NewReviewHandler(d).Register(r)
	NewReservationHandler(d).Register(r)
	NewSettingsHandler(d).Register(r)
	NewDashboardHandler(d).Register(r)
	NewCartHandler(d).Register(r)
}

// cached serves a public read through the cache. Reads from an unavailable
// store are never cached.
func cached[T any](ctx context.Context, d Deps, key string, load func() (T, error)) (T, error) {
	if !d.Store.Available() {
		return load()
	}
	return cache.GetOrLoad(ctx, d.Cache, key, d.CacheTTL, load)
}

// invalidate drops cached reads after a write. A failure leaves stale entries
// until their TTL, so it is logged.
func invalidate(ctx context.Context, d Deps, keys ...string) {
	if err := d.Cache.Delete(ctx, keys...); err != nil {
		logging.For("handlers").WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}

// clientError turns domain errors into errors carrying a client status.
func clientError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrInvalidCoupon), errors.Is(err, services.ErrCouponMinimum):
		return rpc.Invalidf("%s", err.Error())
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrReservationNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case store.IsDuplicateKey(err):
		return fiber.NewError(fiber.StatusConflict, "record already exists")
	}
	return err
}

// refetch returns the row after a write, or a 404 when no row has the id.
func refetch[T any](ctx context.Context, get func(context.Context, uint) (*T, error), id uint) (*T, error) {
	row, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "record not found")
	}
	return row, nil
}
