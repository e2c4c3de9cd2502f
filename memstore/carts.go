package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

// Carts is keyed by user id.
type Carts struct {
	t  *table[models.Cart]
	mu sync.Mutex
}

func NewCarts() *Carts {
	return &Carts{t: newTable[models.Cart]()}
}

func (s *Carts) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	c, ok := s.t.get(userID)
	if !ok {
		return nil, notFound("carts.FindByUser")
	}
	c.Items = append([]models.CartItem{}, c.Items...)
	return &c, nil
}

func (s *Carts) ReplaceItems(_ context.Context, userID primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.t.get(userID)
	if !ok {
		c = models.Cart{ID: primitive.NewObjectID(), User: userID}
	}
	c.Items = append([]models.CartItem{}, items...)
	c.UpdatedAt = time.Now()
	s.t.put(userID, c)
	return &c, nil
}
