package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the actor's cart lines. Lines whose product no longer exists are dropped.
func (s *CartService) Get(ctx context.Context, actor models.Actor) ([]models.CartLine, error) {
	cart, err := s.carts.FindByUser(ctx, actor.ID)
	if err != nil {
		if errs.IsNotFound(err) {
			return []models.CartLine{}, nil
		}
		return nil, errs.Internal("failed to fetch cart", err)
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Internal("failed to fetch cart", err)
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]models.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		p, ok := byID[item.Product]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Images:   p.Images,
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}

// Replace overwrites the cart with items, skipping entries without a product or with a
// non-positive quantity.
func (s *CartService) Replace(ctx context.Context, actor models.Actor, items []models.CartItem) (*models.Cart, error) {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.IsZero() || item.Quantity <= 0 {
			continue
		}
		kept = append(kept, item)
	}
	cart, err := s.carts.ReplaceItems(ctx, actor.ID, kept)
	if err != nil {
		return nil, errs.Internal("failed to update cart", err)
	}
	return cart, nil
}
