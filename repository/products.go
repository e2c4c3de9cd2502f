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

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, wrap(err, "products.FindByID")
	}
	return &product, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs(ids)}}, "products.FindByIDs")
}

func (r *ProductRepository) Find(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Artisan != nil {
		query["artisan"] = *filter.Artisan
	}
	return r.find(ctx, query, "products.Find")
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, op string) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, wrap(err, op)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, wrap(err, op)
	}
	return products, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, product)
	return wrap(err, "products.Insert")
}

func ownedFilter(id primitive.ObjectID, owner *primitive.ObjectID) bson.M {
	filter := bson.M{"_id": id}
	if owner != nil {
		filter["artisan"] = *owner
	}
	return filter
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Images != nil {
		set["images"] = *upd.Images
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}

	var product models.Product
	err := r.coll.FindOneAndUpdate(
		ctx,
		ownedFilter(id, owner),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		return nil, wrap(err, "products.Update")
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, ownedFilter(id, owner))
	if err != nil {
		return wrap(err, "products.Delete")
	}
	return deleted(res, "products.Delete")
}
