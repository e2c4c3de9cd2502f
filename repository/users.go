package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "users.FindByID")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "users.FindByEmail")
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, op string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, wrap(err, op)
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs(ids)}}, "users.FindByIDs")
}

func (r *UserRepository) Find(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	return r.find(ctx, query, "users.Find")
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, op string) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, wrap(err, op)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, wrap(err, op)
	}
	return users, nil
}

func (r *UserRepository) ExistsWithRole(ctx context.Context, role models.Role) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role}, options.Count().SetLimit(1))
	if err != nil {
		return false, wrap(err, "users.ExistsWithRole")
	}
	return n > 0, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, user)
	return wrap(err, "users.Insert")
}

// Save replaces the stored document with user.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return wrap(err, "users.Save")
	}
	if res.MatchedCount == 0 {
		return wrap(mongo.ErrNoDocuments, "users.Save")
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{
		"name":              upd.Name,
		"email":             upd.Email,
		"bio":               upd.Bio,
		"portfolioLink":     upd.PortfolioLink,
		"instagram":         upd.Instagram,
		"location":          upd.Location,
		"phone":             upd.Phone,
		"facebook":          upd.Facebook,
		"twitter":           upd.Twitter,
		"storeAnnouncement": upd.StoreAnnouncement,
	}
	// Images and colour keep their stored values unless a new one is sent.
	if upd.ProfileImage != "" {
		set["profileImage"] = upd.ProfileImage
	}
	if upd.BannerImage != "" {
		set["bannerImage"] = upd.BannerImage
	}
	if upd.LogoImage != "" {
		set["logoImage"] = upd.LogoImage
	}
	if upd.StoreColor != "" {
		set["storeColor"] = upd.StoreColor
	}

	var user models.User
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, wrap(err, "users.UpdateProfile")
	}
	return &user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap(err, "users.Delete")
	}
	return deleted(res, "users.Delete")
}
