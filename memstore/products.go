package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type Products struct {
	t  *table[models.Product]
	mu sync.Mutex
}

func NewProducts() *Products {
	return &Products{t: newTable[models.Product]()}
}

func (s *Products) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := s.t.get(id)
	if !ok {
		return nil, notFound("products.FindByID")
	}
	return &p, nil
}

func (s *Products) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	set := idSet(ids)
	return s.t.filter(func(p models.Product) bool {
		_, ok := set[p.ID]
		return ok
	}), nil
}

func (s *Products) Find(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.t.filter(func(p models.Product) bool {
		if filter.Category != "" && p.Category != filter.Category {
			return false
		}
		return filter.Artisan == nil || p.Artisan == *filter.Artisan
	}), nil
}

func (s *Products) Insert(_ context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.t.put(product.ID, *product)
	return nil
}

func (s *Products) owned(id primitive.ObjectID, owner *primitive.ObjectID) (models.Product, bool) {
	p, ok := s.t.get(id)
	if !ok || (owner != nil && p.Artisan != *owner) {
		return models.Product{}, false
	}
	return p, true
}

func (s *Products) Update(_ context.Context, id primitive.ObjectID, owner *primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.owned(id, owner)
	if !ok {
		return nil, notFound("products.Update")
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Images != nil {
		p.Images = *upd.Images
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	p.UpdatedAt = time.Now()
	s.t.put(id, p)
	return &p, nil
}

func (s *Products) Delete(_ context.Context, id primitive.ObjectID, owner *primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.owned(id, owner); !ok {
		return notFound("products.Delete")
	}
	s.t.remove(id)
	return nil
}
