package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/example/mataam/internal/events"
	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
	"github.com/example/mataam/internal/testutil"
)

func newOrderService(t *testing.T) (*OrderService, *store.Store, *mockPublisher, *mockNotifier) {
	t.Helper()
	st := store.New(testutil.NewDB(t))
	publisher := new(mockPublisher)
	notifier := new(mockNotifier)

	svc := NewOrderService(st, publisher, notifier)
	svc.goAsync = runNow
	return svc, st, publisher, notifier
}

func checkoutInput() PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName:   "Yasmine",
		CustomerPhone:  "+212600000000",
		DeliveryZoneID: 1,
		AddressAr:      "شارع محمد الخامس",
		AddressEn:      "Mohammed V Avenue",
		Items: []PlaceOrderItem{
			{MenuItemID: 1, Quantity: 2, Price: 450},
			{MenuItemID: 2, Quantity: 1, Price: 1200, Notes: "well done"},
		},
		Subtotal:    2100,
		DeliveryFee: 300,
		Total:       2400,
	}
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{9}$`)
	now := time.Now()
	for i := 0; i < 200; i++ {
		assert.Regexp(t, pattern, GenerateOrderNumber(now.Add(time.Duration(i)*time.Millisecond)))
	}
	assert.Regexp(t, `^ORD-000001\d{3}$`, GenerateOrderNumber(time.UnixMilli(5_000_001)))
}

func TestPlaceOrder_WritesOrderWithDefaults(t *testing.T) {
	svc, st, publisher, notifier := newOrderService(t)
	ctx := context.Background()

	require.NoError(t, st.CreateMenuItem(ctx, &models.MenuItem{CategoryID: 1, NameAr: "كفتة", NameEn: "Kofta", NameFr: "Kefta", Price: 999, IsAvailable: true}))

	publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeOrderPlaced
	})).Return(nil).Once()
	notifier.On("NotifyNewOrder", mock.MatchedBy(func(n OrderNotification) bool {
		return len(n.Items) == 2 && n.Items[0].NameEn == "Kofta" && n.Items[0].Total == 900 && n.Total == 2400
	})).Return(nil).Once()

	placed, err := svc.PlaceOrder(ctx, checkoutInput())
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d{9}$`, placed.OrderNumber)

	order, err := st.GetOrderByNumber(ctx, placed.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, placed.OrderID, order.ID)
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.DefaultDeliveryMinutes, order.EstimatedDeliveryTime)

	items, err := st.ListOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(450), items[0].Price, "price snapshot is the submitted price")
	assert.Equal(t, "well done", items[1].Notes)

	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlaceOrder_RetriesOnNumberCollision(t *testing.T) {
	svc, st, publisher, notifier := newOrderService(t)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyNewOrder", mock.Anything).Return(nil)

	numbers := []string{"ORD-111111111", "ORD-111111111", "ORD-222222222"}
	svc.newNumber = func(time.Time) string {
		n := numbers[0]
		numbers = numbers[1:]
		return n
	}

	first, err := svc.PlaceOrder(ctx, checkoutInput())
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, checkoutInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-111111111", first.OrderNumber)
	assert.Equal(t, "ORD-222222222", second.OrderNumber)

	_, total, err := st.ListOrders(ctx, store.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestPlaceOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, _, publisher, notifier := newOrderService(t)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyNewOrder", mock.Anything).Return(nil)
	svc.newNumber = func(time.Time) string { return "ORD-333333333" }

	_, err := svc.PlaceOrder(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, checkoutInput())
	assert.ErrorIs(t, err, ErrOrderNumberTaken)
}

func TestPlaceOrder_RedeemsCoupon(t *testing.T) {
	svc, st, publisher, notifier := newOrderService(t)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyNewOrder", mock.Anything).Return(nil)

	one := 1
	coupon := &models.Coupon{Code: "ONCE", DiscountType: models.DiscountFixed, DiscountValue: 200, MaxUsage: &one, IsActive: true}
	require.NoError(t, st.CreateCoupon(ctx, coupon))

	in := checkoutInput()
	in.CouponCode = "once"
	placed, err := svc.PlaceOrder(ctx, in)
	require.NoError(t, err)

	order, err := st.GetOrderByNumber(ctx, placed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "ONCE", order.CouponCode)

	stored, err := st.GetCoupon(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)

	_, err = svc.PlaceOrder(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestPlaceOrder_NotifiesCouponDiscount(t *testing.T) {
	svc, st, publisher, notifier := newOrderService(t)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, st.CreateCoupon(ctx, &models.Coupon{Code: "TEN", DiscountType: models.DiscountPercentage, DiscountValue: 10, IsActive: true}))

	notifier.On("NotifyNewOrder", mock.MatchedBy(func(n OrderNotification) bool {
		return n.CouponCode == "TEN" && n.Discount == 210
	})).Return(nil).Once()

	in := checkoutInput()
	in.CouponCode = "ten"
	_, err := svc.PlaceOrder(ctx, in)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestPlaceOrder_CouponRules(t *testing.T) {
	svc, st, _, _ := newOrderService(t)
	ctx := context.Background()

	require.NoError(t, st.CreateCoupon(ctx, &models.Coupon{Code: "BIG", DiscountType: models.DiscountPercentage, DiscountValue: 10, MinOrderAmount: 5000, IsActive: true}))

	in := checkoutInput()
	in.CouponCode = "BIG"
	_, err := svc.PlaceOrder(ctx, in)
	assert.ErrorIs(t, err, ErrCouponMinimum)

	in.CouponCode = "NOPE"
	_, err = svc.PlaceOrder(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidCoupon)

	_, total, err := st.ListOrders(ctx, store.OrderFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPlaceOrder_NotifierFailureDoesNotFailOrder(t *testing.T) {
	svc, _, publisher, notifier := newOrderService(t)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	notifier.On("NotifyNewOrder", mock.Anything).Return(errors.New("telegram down"))

	_, err := svc.PlaceOrder(ctx, checkoutInput())
	assert.NoError(t, err)
}

func TestPlaceOrder_UnavailableStore(t *testing.T) {
	svc := NewOrderService(store.New(nil), new(mockPublisher), new(mockNotifier))
	_, err := svc.PlaceOrder(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestUpdateOrder_PublishesStatusChange(t *testing.T) {
	svc, _, publisher, notifier := newOrderService(t)
	ctx := context.Background()
	notifier.On("NotifyNewOrder", mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeOrderPlaced
	})).Return(nil).Once()

	placed, err := svc.PlaceOrder(ctx, checkoutInput())
	require.NoError(t, err)

	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeOrderStatusChanged && e.Key == placed.OrderNumber
	})).Return(nil).Once()

	status := models.OrderPreparing
	updated, err := svc.UpdateOrder(ctx, placed.OrderID, OrderUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, updated.Status)

	notes := "ring twice"
	updated, err = svc.UpdateOrder(ctx, placed.OrderID, OrderUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "ring twice", updated.Notes)
	assert.Equal(t, models.OrderPreparing, updated.Status)

	publisher.AssertExpectations(t)

	_, err = svc.UpdateOrder(ctx, 999, OrderUpdate{Notes: &notes})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
