package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/memstore"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type fixture struct {
	users    *memstore.Users
	products *memstore.Products
	orders   *memstore.Orders
	requests *memstore.ArtisanRequests
	carts    *memstore.Carts
	reviews  *memstore.Reviews
	clock    time.Time
}

func newFixture() *fixture {
	return &fixture{
		users:    memstore.NewUsers(),
		products: memstore.NewProducts(),
		orders:   memstore.NewOrders(),
		requests: memstore.NewArtisanRequests(),
		carts:    memstore.NewCarts(),
		reviews:  memstore.NewReviews(),
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) now() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fixture) orderService() *OrderService {
	s := NewOrderService(f.orders, f.products, f.users, zap.NewNop())
	s.now = f.now
	return s
}

func (f *fixture) requestService() *ArtisanRequestService {
	s := NewArtisanRequestService(f.requests, f.users, zap.NewNop())
	s.now = f.now
	return s
}

func (f *fixture) catalogService() *CatalogService {
	s := NewCatalogService(f.products, f.users, f.orders, zap.NewNop())
	s.now = f.now
	return s
}

func (f *fixture) user(t *testing.T, role models.Role, status models.ArtisanStatus) models.Actor {
	t.Helper()
	id := primitive.NewObjectID()
	u := NewUser("user-"+id.Hex()[18:], id.Hex()+"@example.com", "hash", role, f.now())
	u.ID = id
	u.ArtisanStatus = status
	require.NoError(t, f.users.Insert(context.Background(), u))
	return models.Actor{ID: id, Role: role}
}

func (f *fixture) product(t *testing.T, artisan primitive.ObjectID, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Price:   price,
		Images:  []string{},
		Artisan: artisan,
	}
	require.NoError(t, f.products.Insert(context.Background(), &p))
	return p
}

func (f *fixture) placeOrder(t *testing.T, customer models.Actor, products ...models.Product) *models.Order {
	t.Helper()
	items := make([]models.OrderItem, 0, len(products))
	var total float64
	for _, p := range products {
		items = append(items, models.OrderItem{Product: p.ID, Quantity: 1})
		total += p.Price
	}
	order, err := f.orderService().Create(context.Background(), customer, items, total)
	require.NoError(t, err)
	return order
}

func strPtr(s string) *string {
	return &s
}
