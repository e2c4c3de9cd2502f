package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cart models.Cart
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		return nil, wrap(err, "carts.FindByUser")
	}
	return &cart, nil
}

// ReplaceItems overwrites the user's cart items, creating the cart on first write.
func (r *CartRepository) ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if items == nil {
		items = []models.CartItem{}
	}
	var cart models.Cart
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&cart)
	if err != nil {
		return nil, wrap(err, "carts.ReplaceItems")
	}
	return &cart, nil
}
