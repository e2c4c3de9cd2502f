package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

func TestCreateOrderAssignsFirstItemArtisan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	a := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	b := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	mugA := f.product(t, a.ID, "Mug", 20)
	bowlA := f.product(t, a.ID, "Bowl", 30)
	scarfB := f.product(t, b.ID, "Scarf", 15)

	tests := []struct {
		name     string
		products []models.Product
		artisan  primitive.ObjectID
	}{
		{"single item", []models.Product{mugA}, a.ID},
		{"same artisan", []models.Product{mugA, bowlA}, a.ID},
		{"mixed artisans", []models.Product{mugA, scarfB}, a.ID},
		{"mixed artisans reversed", []models.Product{scarfB, mugA}, b.ID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := f.placeOrder(t, customer, tc.products...)
			assert.Equal(t, tc.artisan, order.Artisan)
			assert.Equal(t, customer.ID, order.Customer)
			assert.Equal(t, models.OrderStatusPending, order.Status)
			assert.Equal(t, models.DefaultTrackingStatus, order.TrackingStatus)
			assert.Empty(t, order.TrackingHistory)

			stored, err := f.orders.FindByID(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.artisan, stored.Artisan)
		})
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	mug := f.product(t, artisan.ID, "Mug", 20)
	svc := f.orderService()

	tests := []struct {
		name  string
		items []models.OrderItem
		total float64
		msg   string
	}{
		{"empty", nil, 0, "order must contain at least one item"},
		{"zero quantity", []models.OrderItem{{Product: mug.ID, Quantity: 0}}, 0, "item 0: quantity must be at least 1"},
		{"negative total", []models.OrderItem{{Product: mug.ID, Quantity: 1}}, -1, "total price must not be negative"},
		{"unknown first product", []models.OrderItem{{Product: primitive.NewObjectID(), Quantity: 1}}, 5, "product not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, customer, tc.items, tc.total)
			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			assert.Equal(t, tc.msg, errs.Message(err))
		})
	}

	t.Run("unknown later product", func(t *testing.T) {
		missing := primitive.NewObjectID()
		_, err := svc.Create(ctx, customer, []models.OrderItem{
			{Product: mug.ID, Quantity: 1},
			{Product: missing, Quantity: 2},
		}, 40)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		n, _ := f.orders.Count(ctx)
		assert.Zero(t, n)
	})
}

func TestUpdateTrackingLocationOnlyUsesTrackingStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))
	svc := f.orderService()

	_, err := svc.UpdateTracking(ctx, artisan, order.ID, TrackingUpdate{TrackingStatus: strPtr("in transit")})
	require.NoError(t, err)

	view, err := svc.UpdateTracking(ctx, artisan, order.ID, TrackingUpdate{Location: strPtr("Warehouse")})
	require.NoError(t, err)
	require.Len(t, view.TrackingHistory, 1)
	assert.Equal(t, "Warehouse", view.TrackingHistory[0].Location)
	assert.Equal(t, "in transit", view.TrackingHistory[0].Status)
	assert.Equal(t, models.OrderStatusPending, view.Status)
}

func TestUpdateTrackingFallbackSeesPatchedTrackingStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))

	view, err := f.orderService().UpdateTracking(ctx, artisan, order.ID, TrackingUpdate{
		TrackingStatus: strPtr("out for delivery"),
		Location:       strPtr("Depot"),
	})
	require.NoError(t, err)
	require.Len(t, view.TrackingHistory, 1)
	assert.Equal(t, "out for delivery", view.TrackingHistory[0].Status)
	assert.Equal(t, "out for delivery", view.TrackingStatus)
}

func TestUpdateTrackingStatusAppendsEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))

	view, err := f.orderService().UpdateTracking(ctx, artisan, order.ID, TrackingUpdate{Status: strPtr("shipped")})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, view.Status)
	require.Len(t, view.TrackingHistory, 1)
	assert.Equal(t, "", view.TrackingHistory[0].Location)
	assert.Equal(t, "shipped", view.TrackingHistory[0].Status)
	assert.False(t, view.TrackingHistory[0].Date.IsZero())
}

func TestUpdateTrackingWithoutStatusOrLocationKeepsHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))

	view, err := f.orderService().UpdateTracking(ctx, admin, order.ID, TrackingUpdate{
		TrackingNumber: strPtr("1Z999"),
		Carrier:        strPtr("UPS"),
		TrackingURL:    strPtr("https://track.example/1Z999"),
		Status:         strPtr(""),
		Location:       strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, view.TrackingHistory)
	assert.Equal(t, "1Z999", view.TrackingNumber)
	assert.Equal(t, "UPS", view.Carrier)
	assert.Equal(t, "https://track.example/1Z999", view.TrackingURL)
	assert.Equal(t, models.OrderStatusPending, view.Status)
}

func TestUpdateTrackingAuthorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	owner := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	other := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, owner.ID, "Mug", 20))
	svc := f.orderService()

	_, err := svc.UpdateTracking(ctx, other, order.ID, TrackingUpdate{Location: strPtr("x")})
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	_, err = svc.UpdateTracking(ctx, customer, order.ID, TrackingUpdate{Location: strPtr("x")})
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	_, err = svc.UpdateTracking(ctx, owner, primitive.NewObjectID(), TrackingUpdate{Location: strPtr("x")})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.UpdateTracking(ctx, owner, order.ID, TrackingUpdate{Status: strPtr("lost")})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.TrackingHistory)
}

func TestGetOrderVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	stranger := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	otherArtisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	mug := f.product(t, artisan.ID, "Mug", 20)
	order := f.placeOrder(t, owner, mug)
	svc := f.orderService()

	tests := []struct {
		name  string
		actor models.Actor
		kind  errs.Kind
		ok    bool
	}{
		{"owner", owner, 0, true},
		{"admin", admin, 0, true},
		{"fulfilling artisan", artisan, 0, true},
		{"other customer", stranger, errs.KindForbidden, false},
		{"other artisan", otherArtisan, errs.KindForbidden, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view, err := svc.Get(ctx, tc.actor, order.ID)
			if !tc.ok {
				require.Error(t, err)
				assert.Equal(t, tc.kind, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.ID, view.ID)
			assert.Equal(t, owner.ID, view.Customer.ID)
			assert.NotEmpty(t, view.Customer.Name)
			require.Len(t, view.Items, 1)
			require.NotNil(t, view.Items[0].Product)
			assert.Equal(t, "Mug", view.Items[0].Product.Name)
		})
	}

	_, err := svc.Get(ctx, owner, primitive.NewObjectID())
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.GetForArtisan(ctx, otherArtisan, order.ID)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	view, err := svc.GetForArtisan(ctx, artisan, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, view.ID)
}

func TestViewKeepsDanglingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	mug := f.product(t, artisan.ID, "Mug", 20)
	order := f.placeOrder(t, customer, mug)

	require.NoError(t, f.products.Delete(ctx, mug.ID, nil))
	require.NoError(t, f.users.Delete(ctx, customer.ID))

	view, err := f.orderService().Get(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, view.Customer.ID)
	assert.Empty(t, view.Customer.Name)
	require.Len(t, view.Items, 1)
	assert.Nil(t, view.Items[0].Product)
	assert.Equal(t, mug.ID, view.Items[0].ProductID)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))
	svc := f.orderService()

	_, err := svc.UpdateStatus(ctx, admin, order.ID, "archived")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "invalid status value", errs.Message(err))
	stored, _ := f.orders.FindByID(ctx, order.ID)
	assert.Equal(t, models.OrderStatusPending, stored.Status)

	_, err = svc.UpdateStatus(ctx, artisan, order.ID, models.OrderStatusShipped)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	_, err = svc.UpdateStatus(ctx, admin, primitive.NewObjectID(), models.OrderStatusShipped)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// Any status may follow any other.
	for _, st := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusPending, models.OrderStatusCancelled} {
		view, err := svc.UpdateStatus(ctx, admin, order.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, view.Status)
		assert.Empty(t, view.TrackingHistory)
	}
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	order := f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))
	svc := f.orderService()

	err := svc.Delete(ctx, admin, primitive.NewObjectID())
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	require.NoError(t, svc.Delete(ctx, admin, order.ID))
	_, err = svc.Get(ctx, admin, order.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestListings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	bob := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	a := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	b := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	mug := f.product(t, a.ID, "Mug", 20)
	scarf := f.product(t, b.ID, "Scarf", 15)

	first := f.placeOrder(t, alice, mug)
	f.placeOrder(t, bob, scarf)
	last := f.placeOrder(t, bob, mug)
	svc := f.orderService()

	mine, err := svc.ListMine(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	forA, err := svc.ListForArtisan(ctx, a)
	require.NoError(t, err)
	require.Len(t, forA, 2)
	assert.Equal(t, last.ID, forA[0].ID)
	assert.Equal(t, first.ID, forA[1].ID)

	_, err = svc.ListForArtisan(ctx, alice)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	all, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListAll(ctx, alice)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	byAlice, err := svc.ListByCustomer(ctx, admin, alice.ID)
	require.NoError(t, err)
	require.Len(t, byAlice, 1)
	assert.Equal(t, first.ID, byAlice[0].ID)

	none, err := svc.ListMine(ctx, admin)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAnalytics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.user(t, models.RoleCustomer, models.ArtisanStatusNone)
	admin := f.user(t, models.RoleAdmin, models.ArtisanStatusNone)
	artisan := f.user(t, models.RoleArtisan, models.ArtisanStatusApproved)
	svc := f.orderService()

	empty, err := svc.Analytics(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, models.OrderAnalytics{}, *empty)

	f.placeOrder(t, customer, f.product(t, artisan.ID, "Mug", 20))
	f.placeOrder(t, customer, f.product(t, artisan.ID, "Bowl", 12.5))

	got, err := svc.Analytics(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalOrders)
	assert.InDelta(t, 32.5, got.TotalRevenue, 1e-9)

	_, err = svc.Analytics(ctx, customer)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
}
