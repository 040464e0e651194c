package service

import (
	"testing"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/testutil"
	"microsite-shop/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (OrderService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := testutil.NewDB(t)
	pub := &recordingPublisher{}
	svc := NewOrderService(db, repository.NewProductRepo(db), repository.NewOrderRepo(db), repository.NewUserRepo(db), pub)
	return svc, db, pub
}

func checkoutRequest(items ...CheckoutItem) *CheckoutRequest {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &CheckoutRequest{
		Email:      "buyer@example.com",
		FirstName:  "Budi",
		LastName:   "Santoso",
		Address:    "Jl. Merdeka 1",
		City:       "Bandung",
		PostalCode: "40111",
		Items:      items,
		Total:      total,
	}
}

func TestCheckoutDecrementsPhysicalStock(t *testing.T) {
	svc, db, pub := newOrderService(t)
	p := seedProduct(t, db, "Canvas Tote", model.ProductPhysical, 10, 50000)

	order, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 3, Price: decimal.NewFromInt(50000)}), nil)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Nil(t, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Canvas Tote", order.Items[0].ProductName)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, 7, stockOf(t, db, p.ID))
	assert.Equal(t, []string{ws.EventOrderCreated, ws.EventStockUpdate}, pub.types())
}

func TestCheckoutInsufficientStockLeavesNothingBehind(t *testing.T) {
	svc, db, pub := newOrderService(t)
	p := seedProduct(t, db, "Widget", model.ProductPhysical, 1, 10000)

	_, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 2, Price: decimal.NewFromInt(10000)}), nil)
	require.Error(t, err)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Insufficient stock for Widget", apperr.As(err).Message)
	assert.Equal(t, 1, stockOf(t, db, p.ID))
	assert.Zero(t, countRows(t, db, &model.Order{}))
	assert.Zero(t, countRows(t, db, &model.OrderItem{}))
	assert.Empty(t, pub.types())
}

func TestCheckoutRollsBackEarlierLines(t *testing.T) {
	svc, db, _ := newOrderService(t)
	a := seedProduct(t, db, "Mug", model.ProductPhysical, 5, 30000)
	b := seedProduct(t, db, "Poster", model.ProductPhysical, 2, 20000)

	_, err := svc.Checkout(checkoutRequest(
		CheckoutItem{ID: a.ID, Quantity: 1, Price: decimal.NewFromInt(30000)},
		CheckoutItem{ID: b.ID, Quantity: 5, Price: decimal.NewFromInt(20000)},
	), nil)
	require.Error(t, err)

	assert.Equal(t, "Insufficient stock for Poster", apperr.As(err).Message)
	assert.Equal(t, 5, stockOf(t, db, a.ID))
	assert.Equal(t, 2, stockOf(t, db, b.ID))
	assert.Zero(t, countRows(t, db, &model.Order{}))
}

func TestCheckoutDigitalIgnoresStock(t *testing.T) {
	svc, db, pub := newOrderService(t)
	p := seedProduct(t, db, "E-book", model.ProductDigital, 0, 75000)

	order, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 50, Price: decimal.NewFromInt(75000)}), nil)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 50, order.Items[0].Quantity)
	assert.Equal(t, 0, stockOf(t, db, p.ID))
	assert.Equal(t, []string{ws.EventOrderCreated}, pub.types())
}

func TestCheckoutMissingProduct(t *testing.T) {
	svc, db, _ := newOrderService(t)

	_, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: 999, Quantity: 1, Price: decimal.NewFromInt(1)}), nil)
	require.Error(t, err)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Product 999 not found", apperr.As(err).Message)
	assert.Zero(t, countRows(t, db, &model.Order{}))
}

func TestCheckoutStoresTotalAsGiven(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := seedProduct(t, db, "Sticker", model.ProductPhysical, 10, 100)

	req := checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 2, Price: decimal.NewFromInt(100)})
	req.Total = decimal.NewFromInt(1)
	order, err := svc.Checkout(req, nil)
	require.NoError(t, err)

	stored, err := svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(1)), "total = %s", stored.Total)
	assert.True(t, stored.ItemsTotal().Equal(decimal.NewFromInt(200)), "items total = %s", stored.ItemsTotal())
}

func TestCheckoutLinksKnownUserOnly(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := seedProduct(t, db, "Cap", model.ProductPhysical, 10, 40000)
	user := &model.User{Email: "c@example.com", Name: "C", Role: model.RoleCustomer, Password: "x"}
	require.NoError(t, db.Create(user).Error)

	linked, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 1, Price: decimal.NewFromInt(40000)}), &user.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.UserID)
	assert.Equal(t, user.ID, *linked.UserID)

	ghost := uint(4242)
	guest, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 1, Price: decimal.NewFromInt(40000)}), &ghost)
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)

	mine, err := svc.GetUserOrders(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, linked.ID, mine[0].ID)
}

func TestCheckoutValidation(t *testing.T) {
	svc, _, _ := newOrderService(t)

	req := checkoutRequest()
	_, err := svc.Checkout(req, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	req = checkoutRequest(CheckoutItem{ID: 1, Quantity: 0, Price: decimal.NewFromInt(1)})
	_, err = svc.Checkout(req, nil)
	require.Error(t, err)
	assert.Contains(t, apperr.As(err).Message, "Quantity")
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db, pub := newOrderService(t)
	p := seedProduct(t, db, "Pin", model.ProductPhysical, 10, 5000)
	order, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 1, Price: decimal.NewFromInt(5000)}), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, "lost")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(order.ID+100, "paid")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	updated, err := svc.UpdateStatus(order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, updated.Status)

	// Any transition is allowed, including back to pending.
	updated, err = svc.UpdateStatus(order.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, updated.Status)

	assert.Contains(t, pub.types(), ws.EventOrderStatusUpdated)
}

func TestDeletedProductKeepsOrderHistory(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := seedProduct(t, db, "Retired Lamp", model.ProductPhysical, 3, 90000)
	order, err := svc.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Quantity: 1, Price: decimal.NewFromInt(90000)}), nil)
	require.NoError(t, err)

	require.NoError(t, repository.NewProductRepo(db).Delete(p.ID))

	stored, err := svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Nil(t, stored.Items[0].ProductID)
	assert.Equal(t, "Retired Lamp", stored.Items[0].ProductName)
}
