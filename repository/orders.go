package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, order)
	return wrap(err, "orders.Insert")
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, wrap(err, "orders.FindByID")
	}
	return &order, nil
}

func (r *OrderRepository) Find(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Customer != nil {
		query["customer"] = *filter.Customer
	}
	if filter.Artisan != nil {
		query["artisan"] = *filter.Artisan
	}
	opts := options.Find()
	if filter.NewestFirst {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, wrap(err, "orders.Find")
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, wrap(err, "orders.Find")
	}
	return orders, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		return nil, wrap(err, "orders.SetStatus")
	}
	return &order, nil
}

// ApplyTracking issues one update so the field patch and the history append land together.
func (r *OrderRepository) ApplyTracking(ctx context.Context, id primitive.ObjectID, patch models.TrackingPatch, entry *models.TrackingEntry) (*models.Order, error) {
	set := bson.M{}
	if patch.TrackingNumber != nil {
		set["trackingNumber"] = *patch.TrackingNumber
	}
	if patch.Carrier != nil {
		set["carrier"] = *patch.Carrier
	}
	if patch.TrackingStatus != nil {
		set["trackingStatus"] = *patch.TrackingStatus
	}
	if patch.TrackingURL != nil {
		set["trackingUrl"] = *patch.TrackingURL
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if entry != nil {
		update["$push"] = bson.M{"trackingHistory": entry}
	}
	if len(update) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		return nil, wrap(err, "orders.ApplyTracking")
	}
	return &order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap(err, "orders.Delete")
	}
	return deleted(res, "orders.Delete")
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, wrap(err, "orders.Count")
}

func (r *OrderRepository) SumRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, wrap(err, "orders.SumRevenue")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, wrap(err, "orders.SumRevenue")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *OrderRepository) CountWithProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"items.product": productID})
	return n, wrap(err, "orders.CountWithProduct")
}
