package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

// Stores return errs.ErrRecordNotFound (possibly wrapped) when a lookup or targeted
// write matches nothing. Any other error is a store failure.

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Find(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	ExistsWithRole(ctx context.Context, role models.Role) (bool, error)
	Insert(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Find(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	// Update and Delete only touch the product when owner is nil or matches its artisan.
	Update(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Find(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	// ApplyTracking sets the patch fields and appends entry (when non-nil) in a single write.
	ApplyTracking(ctx context.Context, id primitive.ObjectID, patch models.TrackingPatch, entry *models.TrackingEntry) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	CountWithProduct(ctx context.Context, productID primitive.ObjectID) (int64, error)
}

type ArtisanRequestStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ArtisanRequest, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ArtisanRequest, error)
	Find(ctx context.Context) ([]models.ArtisanRequest, error)
	Insert(ctx context.Context, req *models.ArtisanRequest) error
	Save(ctx context.Context, req *models.ArtisanRequest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) (*models.Cart, error)
}

type ReviewStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	Insert(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id primitive.ObjectID, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
