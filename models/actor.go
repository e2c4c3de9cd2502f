package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID   primitive.ObjectID
	Role Role
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}
