package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\-\s]{7,20}$`)

// AdminUserUpdate is what an admin may change on another account.
type AdminUserUpdate struct {
	Name          *string               `json:"name"`
	Role          *models.Role          `json:"role"`
	ArtisanStatus *models.ArtisanStatus `json:"artisanStatus"`
}

type ArtisanProfile struct {
	Artisan  models.UserSummary `json:"artisan"`
	Bio      string             `json:"bio"`
	Products []models.Product   `json:"products"`
}

type UserService struct {
	users    UserStore
	products ProductStore
	logger   *zap.Logger
}

func NewUserService(users UserStore, products ProductStore, logger *zap.Logger) *UserService {
	return &UserService{users: users, products: products, logger: logger.Named("users")}
}

func (s *UserService) Profile(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.get(ctx, actor.ID)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor models.Actor, upd models.ProfileUpdate) (*models.User, error) {
	upd.Email = strings.TrimSpace(strings.ToLower(upd.Email))
	if strings.TrimSpace(upd.Name) == "" || upd.Email == "" {
		return nil, errs.Validation("name and email are required")
	}
	if !isValidEmail(upd.Email) {
		return nil, errs.Validation("invalid email format")
	}
	for _, link := range []struct{ field, value string }{
		{"portfolioLink", upd.PortfolioLink},
		{"facebook", upd.Facebook},
		{"twitter", upd.Twitter},
	} {
		if link.value != "" && !strings.HasPrefix(link.value, "http://") && !strings.HasPrefix(link.value, "https://") {
			return nil, errs.Validation(link.field + " must be a valid URL (start with http:// or https://)")
		}
	}
	if upd.Phone != "" && !phonePattern.MatchString(upd.Phone) {
		return nil, errs.Validation("invalid phone number format")
	}

	user, err := s.users.UpdateProfile(ctx, actor.ID, upd)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("user not found")
		}
		if errors.Is(err, errs.ErrDuplicateKey) {
			return nil, errs.Validation("email already exists")
		}
		return nil, errs.Internal("failed to update profile", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, errs.Internal("failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.get(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, upd AdminUserUpdate) (*models.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Role != nil {
		switch *upd.Role {
		case models.RoleCustomer, models.RoleArtisan:
		case models.RoleAdmin:
			if user.Role != models.RoleAdmin {
				exists, err := s.users.ExistsWithRole(ctx, models.RoleAdmin)
				if err != nil {
					return nil, errs.Internal("failed to update user", err)
				}
				if exists {
					return nil, errs.Forbidden("admin already exists")
				}
			}
		default:
			return nil, errs.Validation("invalid role")
		}
		user.Role = *upd.Role
	}
	if upd.ArtisanStatus != nil {
		if !upd.ArtisanStatus.IsValid() {
			return nil, errs.Validation("invalid artisan status")
		}
		user.ArtisanStatus = *upd.ArtisanStatus
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, errs.Internal("failed to update user", err)
	}
	s.logger.Info("user updated by admin", zap.String("user_id", id.Hex()))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("user not found")
		}
		return errs.Internal("failed to delete user", err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id.Hex()))
	return nil
}

// ArtisanProfile is the public storefront of an approved artisan.
func (s *UserService) ArtisanProfile(ctx context.Context, id primitive.ObjectID) (*ArtisanProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil && !errs.IsNotFound(err) {
		return nil, errs.Internal("failed to fetch artisan", err)
	}
	if err != nil || user.ArtisanStatus != models.ArtisanStatusApproved {
		return nil, errs.NotFound("artisan not found")
	}
	products, err := s.products.Find(ctx, models.ProductFilter{Artisan: &user.ID})
	if err != nil {
		return nil, errs.Internal("failed to fetch artisan", err)
	}
	return &ArtisanProfile{Artisan: user.Summary(), Bio: user.Bio, Products: products}, nil
}

func (s *UserService) get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Internal("failed to fetch user", err)
	}
	return user, nil
}
