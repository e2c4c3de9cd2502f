package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArtisanRequestStatus string

const (
	RequestStatusPending  ArtisanRequestStatus = "pending"
	RequestStatusApproved ArtisanRequestStatus = "approved"
	RequestStatusRejected ArtisanRequestStatus = "rejected"
)

// IsDecision reports whether s is a value an admin may decide a request with.
func (s ArtisanRequestStatus) IsDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

type ArtisanRequest struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID   `bson:"user" json:"user"`
	BrandName     string               `bson:"brandName" json:"brandName"`
	Bio           string               `bson:"bio" json:"bio"`
	PortfolioLink string               `bson:"portfolioLink" json:"portfolioLink"`
	Status        ArtisanRequestStatus `bson:"status" json:"status"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

// ArtisanRequestView is a request with its user resolved for admin listings.
type ArtisanRequestView struct {
	ID            primitive.ObjectID   `json:"id"`
	User          UserSummary          `json:"user"`
	BrandName     string               `json:"brandName"`
	Bio           string               `json:"bio"`
	PortfolioLink string               `json:"portfolioLink"`
	Status        ArtisanRequestStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
}
