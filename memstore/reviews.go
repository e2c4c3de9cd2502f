package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type Reviews struct {
	t  *table[models.Review]
	mu sync.Mutex
}

func NewReviews() *Reviews {
	return &Reviews{t: newTable[models.Review]()}
}

func (s *Reviews) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	r, ok := s.t.get(id)
	if !ok {
		return nil, notFound("reviews.FindByID")
	}
	return &r, nil
}

func (s *Reviews) FindByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	reviews := s.t.filter(func(r models.Review) bool { return r.Product == productID })
	sortNewestFirst(reviews, func(r models.Review) int64 { return r.CreatedAt.UnixNano() })
	return reviews, nil
}

func (s *Reviews) Insert(_ context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	s.t.put(review.ID, *review)
	return nil
}

func (s *Reviews) Update(_ context.Context, id primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.t.get(id)
	if !ok {
		return nil, notFound("reviews.Update")
	}
	r.Rating = rating
	r.Comment = comment
	s.t.put(id, r)
	return &r, nil
}

func (s *Reviews) Delete(_ context.Context, id primitive.ObjectID) error {
	if !s.t.remove(id) {
		return notFound("reviews.Delete")
	}
	return nil
}
