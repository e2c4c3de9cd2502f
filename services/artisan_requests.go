package services

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/authz"
	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type ArtisanRequestInput struct {
	BrandName     string `json:"brandName"`
	Bio           string `json:"bio"`
	PortfolioLink string `json:"portfolioLink"`
}

// ArtisanRequestService runs the artisan approval workflow. Request and user writes are
// separate documents; a failure between them is not rolled back.
type ArtisanRequestService struct {
	requests ArtisanRequestStore
	users    UserStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewArtisanRequestService(requests ArtisanRequestStore, users UserStore, logger *zap.Logger) *ArtisanRequestService {
	return &ArtisanRequestService{
		requests: requests,
		users:    users,
		logger:   logger.Named("artisan_requests"),
		now:      time.Now,
	}
}

// Submit creates the actor's request or, when one exists, overwrites it and puts it back
// to pending. created reports which of the two happened.
func (s *ArtisanRequestService) Submit(ctx context.Context, actor models.Actor, in ArtisanRequestInput) (req *models.ArtisanRequest, created bool, err error) {
	if strings.TrimSpace(in.BrandName) == "" {
		return nil, false, errs.Validation("brandName is required")
	}
	if strings.TrimSpace(in.Bio) == "" {
		return nil, false, errs.Validation("bio is required")
	}

	req, err = s.requests.FindByUser(ctx, actor.ID)
	switch {
	case err == nil:
		if err := s.overwrite(ctx, req, in); err != nil {
			return nil, false, err
		}
	case errs.IsNotFound(err):
		req, created, err = s.insertOrOverwrite(ctx, actor, in)
		if err != nil {
			return nil, false, err
		}
	default:
		return nil, false, errs.Internal("failed to save artisan request", err)
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, false, errs.NotFound("user not found")
		}
		return nil, false, errs.Internal("failed to update user", err)
	}
	user.ArtisanStatus = models.ArtisanStatusPending
	if err := s.users.Save(ctx, user); err != nil {
		return nil, false, errs.Internal("failed to update user", err)
	}

	s.logger.Info("artisan request submitted",
		zap.String("request_id", req.ID.Hex()),
		zap.String("user_id", actor.ID.Hex()),
		zap.Bool("created", created))
	return req, created, nil
}

// insertOrOverwrite creates the request. When a concurrent submit for the same user wins the
// unique index, the stored request is overwritten instead.
func (s *ArtisanRequestService) insertOrOverwrite(ctx context.Context, actor models.Actor, in ArtisanRequestInput) (*models.ArtisanRequest, bool, error) {
	req := &models.ArtisanRequest{
		ID:            primitive.NewObjectID(),
		User:          actor.ID,
		BrandName:     in.BrandName,
		Bio:           in.Bio,
		PortfolioLink: in.PortfolioLink,
		Status:        models.RequestStatusPending,
		CreatedAt:     s.now(),
	}
	err := s.requests.Insert(ctx, req)
	if err == nil {
		return req, true, nil
	}
	if !errors.Is(err, errs.ErrDuplicateKey) {
		return nil, false, errs.Internal("failed to save artisan request", err)
	}

	existing, err := s.requests.FindByUser(ctx, actor.ID)
	if err != nil {
		return nil, false, errs.Internal("failed to save artisan request", err)
	}
	if err := s.overwrite(ctx, existing, in); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *ArtisanRequestService) overwrite(ctx context.Context, req *models.ArtisanRequest, in ArtisanRequestInput) error {
	req.BrandName = in.BrandName
	req.Bio = in.Bio
	req.PortfolioLink = in.PortfolioLink
	req.Status = models.RequestStatusPending
	if err := s.requests.Save(ctx, req); err != nil {
		return errs.Internal("failed to save artisan request", err)
	}
	return nil
}

func (s *ArtisanRequestService) Mine(ctx context.Context, actor models.Actor) (*models.ArtisanRequest, error) {
	req, err := s.requests.FindByUser(ctx, actor.ID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("no artisan request found")
		}
		return nil, errs.Internal("failed to fetch artisan request", err)
	}
	return req, nil
}

func (s *ArtisanRequestService) List(ctx context.Context, actor models.Actor) ([]models.ArtisanRequestView, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	reqs, err := s.requests.Find(ctx)
	if err != nil {
		return nil, errs.Internal("failed to fetch artisan requests", err)
	}
	ids := make([]primitive.ObjectID, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.User)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Internal("failed to fetch artisan requests", err)
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	views := make([]models.ArtisanRequestView, 0, len(reqs))
	for _, r := range reqs {
		user := models.UserSummary{ID: r.User}
		if u, ok := byID[r.User]; ok {
			user = u.Summary()
		}
		views = append(views, models.ArtisanRequestView{
			ID:            r.ID,
			User:          user,
			BrandName:     r.BrandName,
			Bio:           r.Bio,
			PortfolioLink: r.PortfolioLink,
			Status:        r.Status,
			CreatedAt:     r.CreatedAt,
		})
	}
	return views, nil
}

// Decide approves or rejects a request and mirrors the outcome onto the user:
// approved makes the user an approved artisan, rejected only marks artisanStatus.
func (s *ArtisanRequestService) Decide(ctx context.Context, actor models.Actor, id primitive.ObjectID, decision models.ArtisanRequestStatus) (*models.ArtisanRequest, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	if !decision.IsDecision() {
		return nil, errs.Validation("invalid status value")
	}
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("request not found")
		}
		return nil, errs.Internal("failed to fetch artisan request", err)
	}

	req.Status = decision
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, errs.Internal("failed to save artisan request", err)
	}

	user, err := s.users.FindByID(ctx, req.User)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Internal("failed to update user", err)
	}
	if decision == models.RequestStatusApproved {
		user.Role = models.RoleArtisan
		user.ArtisanStatus = models.ArtisanStatusApproved
	} else {
		user.ArtisanStatus = models.ArtisanStatusRejected
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, errs.Internal("failed to update user", err)
	}

	s.logger.Info("artisan request decided",
		zap.String("request_id", req.ID.Hex()),
		zap.String("user_id", user.ID.Hex()),
		zap.String("decision", string(decision)))
	return req, nil
}

// Delete removes a request and resets the user's artisanStatus to none.
func (s *ArtisanRequestService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return errs.Forbidden("unauthorized role access")
	}
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("request not found")
		}
		return errs.Internal("failed to fetch artisan request", err)
	}

	user, err := s.users.FindByID(ctx, req.User)
	switch {
	case err == nil:
		user.ArtisanStatus = models.ArtisanStatusNone
		if err := s.users.Save(ctx, user); err != nil {
			return errs.Internal("failed to update user", err)
		}
	case !errs.IsNotFound(err):
		return errs.Internal("failed to update user", err)
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("request not found")
		}
		return errs.Internal("failed to delete artisan request", err)
	}
	s.logger.Info("artisan request deleted", zap.String("request_id", id.Hex()))
	return nil
}
