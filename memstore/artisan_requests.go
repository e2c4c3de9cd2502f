package memstore

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type ArtisanRequests struct {
	t *table[models.ArtisanRequest]
	// mu guards the one-request-per-user rule.
	mu sync.Mutex
}

func NewArtisanRequests() *ArtisanRequests {
	return &ArtisanRequests{t: newTable[models.ArtisanRequest]()}
}

func (s *ArtisanRequests) FindByID(_ context.Context, id primitive.ObjectID) (*models.ArtisanRequest, error) {
	r, ok := s.t.get(id)
	if !ok {
		return nil, notFound("artisanRequests.FindByID")
	}
	return &r, nil
}

func (s *ArtisanRequests) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.ArtisanRequest, error) {
	found := s.t.filter(func(r models.ArtisanRequest) bool { return r.User == userID })
	if len(found) == 0 {
		return nil, notFound("artisanRequests.FindByUser")
	}
	return &found[0], nil
}

func (s *ArtisanRequests) Find(_ context.Context) ([]models.ArtisanRequest, error) {
	return s.t.filter(func(models.ArtisanRequest) bool { return true }), nil
}

func (s *ArtisanRequests) Insert(_ context.Context, req *models.ArtisanRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.t.filter(func(r models.ArtisanRequest) bool { return r.User == req.User })) > 0 {
		return errors.Wrap(errs.ErrDuplicateKey, "artisanRequests.Insert")
	}
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	s.t.put(req.ID, *req)
	return nil
}

func (s *ArtisanRequests) Save(_ context.Context, req *models.ArtisanRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.t.get(req.ID); !ok {
		return notFound("artisanRequests.Save")
	}
	s.t.put(req.ID, *req)
	return nil
}

func (s *ArtisanRequests) Delete(_ context.Context, id primitive.ObjectID) error {
	if !s.t.remove(id) {
		return notFound("artisanRequests.Delete")
	}
	return nil
}
