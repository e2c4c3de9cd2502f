// Package repository implements the service stores on MongoDB.
package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
)

// Collection names match the documents written by the earlier Node service.
const (
	usersCollection           = "users"
	productsCollection        = "products"
	ordersCollection          = "orders"
	artisanRequestsCollection = "artisanrequests"
	cartsCollection           = "carts"
	reviewsCollection         = "reviews"
)

const queryTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// wrap maps driver errors onto the store contract.
func wrap(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Wrap(errs.ErrRecordNotFound, op)
	case mongo.IsDuplicateKeyError(err):
		return errors.Wrap(errs.ErrDuplicateKey, op)
	}
	return errors.Wrap(err, op)
}

func deleted(res *mongo.DeleteResult, op string) error {
	if res.DeletedCount == 0 {
		return errors.Wrap(errs.ErrRecordNotFound, op)
	}
	return nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
