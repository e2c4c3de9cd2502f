package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleArtisan  Role = "artisan"
	RoleAdmin    Role = "admin"
)

// ParseRole maps unknown values to RoleCustomer.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RoleCustomer, RoleArtisan, RoleAdmin:
		return r
	}
	return RoleCustomer
}

type ArtisanStatus string

const (
	ArtisanStatusNone     ArtisanStatus = "none"
	ArtisanStatusPending  ArtisanStatus = "pending"
	ArtisanStatusApproved ArtisanStatus = "approved"
	ArtisanStatusRejected ArtisanStatus = "rejected"
)

func (s ArtisanStatus) IsValid() bool {
	switch s {
	case ArtisanStatusNone, ArtisanStatusPending, ArtisanStatusApproved, ArtisanStatusRejected:
		return true
	}
	return false
}

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	Role              Role               `bson:"role" json:"role"`
	ArtisanStatus     ArtisanStatus      `bson:"artisanStatus" json:"artisanStatus"`
	Bio               string             `bson:"bio" json:"bio"`
	PortfolioLink     string             `bson:"portfolioLink" json:"portfolioLink"`
	Instagram         string             `bson:"instagram" json:"instagram"`
	Location          string             `bson:"location" json:"location"`
	Phone             string             `bson:"phone" json:"phone"`
	Facebook          string             `bson:"facebook" json:"facebook"`
	Twitter           string             `bson:"twitter" json:"twitter"`
	ProfileImage      string             `bson:"profileImage" json:"profileImage"`
	BannerImage       string             `bson:"bannerImage" json:"bannerImage"`
	LogoImage         string             `bson:"logoImage" json:"logoImage"`
	StoreColor        string             `bson:"storeColor" json:"storeColor"`
	StoreAnnouncement string             `bson:"storeAnnouncement" json:"storeAnnouncement"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the reduced user shape embedded in order and request responses.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name,omitempty"`
	Email string             `json:"email,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ProfileUpdate holds the self-service profile fields of PUT /users/me.
type ProfileUpdate struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Bio               string `json:"bio"`
	PortfolioLink     string `json:"portfolioLink"`
	Instagram         string `json:"instagram"`
	Location          string `json:"location"`
	Phone             string `json:"phone"`
	Facebook          string `json:"facebook"`
	Twitter           string `json:"twitter"`
	ProfileImage      string `json:"profileImage"`
	BannerImage       string `json:"bannerImage"`
	LogoImage         string `json:"logoImage"`
	StoreColor        string `json:"storeColor"`
	StoreAnnouncement string `json:"storeAnnouncement"`
}

// UserFilter selects users; zero fields match everything.
type UserFilter struct {
	Role Role
}
