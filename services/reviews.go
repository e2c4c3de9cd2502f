package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewService struct {
	reviews  ReviewStore
	products ProductStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewReviewService(reviews ReviewStore, products ProductStore, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger.Named("reviews"), now: time.Now}
}

func (s *ReviewService) ForProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, errs.Internal("failed to fetch reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, actor models.Actor, productID primitive.ObjectID, in ReviewInput) (*models.Review, error) {
	if err := validRating(in.Rating); err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("product not found")
		}
		return nil, errs.Internal("failed to create review", err)
	}
	review := &models.Review{
		ID:        primitive.NewObjectID(),
		Product:   productID,
		Customer:  actor.ID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.now(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, errs.Internal("failed to create review", err)
	}
	return review, nil
}

// Update lets a customer edit only their own review.
func (s *ReviewService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, in ReviewInput) (*models.Review, error) {
	if err := validRating(in.Rating); err != nil {
		return nil, err
	}
	review, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Customer != actor.ID {
		return nil, errs.Forbidden("not authorized to update this review")
	}
	updated, err := s.reviews.Update(ctx, id, in.Rating, in.Comment)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("review not found")
		}
		return nil, errs.Internal("failed to update review", err)
	}
	return updated, nil
}

// Delete is open to the review's author and to admins.
func (s *ReviewService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	review, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Is(models.RoleAdmin) && review.Customer != actor.ID {
		return errs.Forbidden("not authorized to delete this review")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("review not found")
		}
		return errs.Internal("failed to delete review", err)
	}
	s.logger.Info("review deleted", zap.String("review_id", id.Hex()), zap.String("actor_id", actor.ID.Hex()))
	return nil
}

func (s *ReviewService) load(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("review not found")
		}
		return nil, errs.Internal("failed to fetch review", err)
	}
	return review, nil
}

func validRating(r int) error {
	if r < 1 || r > 5 {
		return errs.Validation("rating must be between 1 and 5")
	}
	return nil
}
