package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type Orders struct {
	t  *table[models.Order]
	mu sync.Mutex
}

func NewOrders() *Orders {
	return &Orders{t: newTable[models.Order]()}
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	o.TrackingHistory = append([]models.TrackingEntry{}, o.TrackingHistory...)
	return o
}

func (s *Orders) Insert(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.t.put(order.ID, cloneOrder(*order))
	return nil
}

func (s *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := s.t.get(id)
	if !ok {
		return nil, notFound("orders.FindByID")
	}
	o = cloneOrder(o)
	return &o, nil
}

func (s *Orders) Find(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	orders := s.t.filter(func(o models.Order) bool {
		if filter.Customer != nil && o.Customer != *filter.Customer {
			return false
		}
		return filter.Artisan == nil || o.Artisan == *filter.Artisan
	})
	for i := range orders {
		orders[i] = cloneOrder(orders[i])
	}
	if filter.NewestFirst {
		sortNewestFirst(orders, func(o models.Order) int64 { return o.CreatedAt.UnixNano() })
	}
	return orders, nil
}

func (s *Orders) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	return s.ApplyTracking(ctx, id, models.TrackingPatch{Status: &status}, nil)
}

func (s *Orders) ApplyTracking(_ context.Context, id primitive.ObjectID, patch models.TrackingPatch, entry *models.TrackingEntry) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.t.get(id)
	if !ok {
		return nil, notFound("orders.ApplyTracking")
	}
	o = cloneOrder(o)
	if patch.TrackingNumber != nil {
		o.TrackingNumber = *patch.TrackingNumber
	}
	if patch.Carrier != nil {
		o.Carrier = *patch.Carrier
	}
	if patch.TrackingStatus != nil {
		o.TrackingStatus = *patch.TrackingStatus
	}
	if patch.TrackingURL != nil {
		o.TrackingURL = *patch.TrackingURL
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if entry != nil {
		o.TrackingHistory = append(o.TrackingHistory, *entry)
	}
	s.t.put(id, o)
	o = cloneOrder(o)
	return &o, nil
}

func (s *Orders) Delete(_ context.Context, id primitive.ObjectID) error {
	if !s.t.remove(id) {
		return notFound("orders.Delete")
	}
	return nil
}

func (s *Orders) Count(_ context.Context) (int64, error) {
	return int64(len(s.t.filter(func(models.Order) bool { return true }))), nil
}

func (s *Orders) SumRevenue(_ context.Context) (float64, error) {
	var sum float64
	for _, o := range s.t.filter(func(models.Order) bool { return true }) {
		sum += o.TotalPrice
	}
	return sum, nil
}

func (s *Orders) CountWithProduct(_ context.Context, productID primitive.ObjectID) (int64, error) {
	n := len(s.t.filter(func(o models.Order) bool {
		for _, item := range o.Items {
			if item.Product == productID {
				return true
			}
		}
		return false
	}))
	return int64(n), nil
}
