package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type ArtisanRequestRepository struct {
	coll *mongo.Collection
}

func NewArtisanRequestRepository(db *mongo.Database) *ArtisanRequestRepository {
	return &ArtisanRequestRepository{coll: db.Collection(artisanRequestsCollection)}
}

func (r *ArtisanRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ArtisanRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "artisanRequests.FindByID")
}

func (r *ArtisanRequestRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ArtisanRequest, error) {
	return r.findOne(ctx, bson.M{"user": userID}, "artisanRequests.FindByUser")
}

func (r *ArtisanRequestRepository) findOne(ctx context.Context, filter bson.M, op string) (*models.ArtisanRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var req models.ArtisanRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		return nil, wrap(err, op)
	}
	return &req, nil
}

func (r *ArtisanRequestRepository) Find(ctx context.Context) ([]models.ArtisanRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrap(err, "artisanRequests.Find")
	}
	defer cursor.Close(ctx)

	reqs := []models.ArtisanRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, wrap(err, "artisanRequests.Find")
	}
	return reqs, nil
}

func (r *ArtisanRequestRepository) Insert(ctx context.Context, req *models.ArtisanRequest) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, req)
	return wrap(err, "artisanRequests.Insert")
}

func (r *ArtisanRequestRepository) Save(ctx context.Context, req *models.ArtisanRequest) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return wrap(err, "artisanRequests.Save")
	}
	if res.MatchedCount == 0 {
		return wrap(mongo.ErrNoDocuments, "artisanRequests.Save")
	}
	return nil
}

func (r *ArtisanRequestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap(err, "artisanRequests.Delete")
	}
	return deleted(res, "artisanRequests.Delete")
}
