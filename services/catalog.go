package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/authz"
	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	// Artisan is only honoured for admins creating on behalf of an artisan.
	Artisan string `json:"artisan"`
}

type ProductAnalytics struct {
	SalesCount int64 `json:"salesCount"`
}

// CatalogService manages products. Artisans act on their own products only; admins on any.
type CatalogService struct {
	products ProductStore
	users    UserStore
	orders   OrderStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewCatalogService(products ProductStore, users UserStore, orders OrderStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		users:    users,
		orders:   orders,
		logger:   logger.Named("catalog"),
		now:      time.Now,
	}
}

func (s *CatalogService) Create(ctx context.Context, actor models.Actor, in ProductInput) (*models.Product, error) {
	if err := s.checkSeller(ctx, actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.Validation("name is required")
	}
	if in.Price < 0 {
		return nil, errs.Validation("price must not be negative")
	}
	if in.Stock < 0 {
		return nil, errs.Validation("stock must not be negative")
	}

	artisan := actor.ID
	if actor.Is(models.RoleAdmin) {
		id, err := primitive.ObjectIDFromHex(in.Artisan)
		if err != nil {
			return nil, errs.Validation("artisan is required")
		}
		artisan = id
	}

	now := s.now()
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Images:      in.Images,
		Stock:       in.Stock,
		Artisan:     artisan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, errs.Internal("failed to create product", err)
	}
	s.logger.Info("product created", zap.String("product_id", product.ID.Hex()), zap.String("artisan_id", artisan.Hex()))
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	if err := s.checkSeller(ctx, actor); err != nil {
		return nil, err
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, errs.Validation("price must not be negative")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return nil, errs.Validation("stock must not be negative")
	}
	product, err := s.products.Update(ctx, id, ownerScope(actor), upd)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("product not found or unauthorized")
		}
		return nil, errs.Internal("update failed", err)
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	if err := s.checkSeller(ctx, actor); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id, ownerScope(actor)); err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("product not found or unauthorized")
		}
		return errs.Internal("delete failed", err)
	}
	s.logger.Info("product deleted", zap.String("product_id", id.Hex()), zap.String("actor_id", actor.ID.Hex()))
	return nil
}

func (s *CatalogService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, errs.Internal("failed to fetch products", err)
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("product not found")
		}
		return nil, errs.Internal("failed to fetch product", err)
	}
	return product, nil
}

func (s *CatalogService) Mine(ctx context.Context, actor models.Actor) ([]models.Product, error) {
	return s.List(ctx, models.ProductFilter{Artisan: &actor.ID})
}

// Analytics counts the orders that contain the product.
func (s *CatalogService) Analytics(ctx context.Context, id primitive.ObjectID) (*ProductAnalytics, error) {
	n, err := s.orders.CountWithProduct(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to fetch analytics", err)
	}
	return &ProductAnalytics{SalesCount: n}, nil
}

// checkSeller lets admins through and requires artisans to be approved.
func (s *CatalogService) checkSeller(ctx context.Context, actor models.Actor) error {
	if !authz.Allow(actor.Role, models.RoleArtisan, models.RoleAdmin) {
		return errs.Forbidden("unauthorized role access")
	}
	if actor.Is(models.RoleAdmin) {
		return nil
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errs.IsNotFound(err) {
			return errs.Forbidden("artisan status not approved")
		}
		return errs.Internal("failed to verify artisan", err)
	}
	if user.ArtisanStatus != models.ArtisanStatusApproved {
		return errs.Forbidden("artisan status not approved")
	}
	return nil
}

func ownerScope(actor models.Actor) *primitive.ObjectID {
	if actor.Is(models.RoleAdmin) {
		return nil
	}
	id := actor.ID
	return &id
}
