package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	ID            string               `json:"id"`
	Role          models.Role          `json:"role"`
	Name          string               `json:"name"`
	ArtisanStatus models.ArtisanStatus `json:"artisanStatus"`
	jwt.StandardClaims
}

// JWT signs and verifies HS256 session tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(cfg config.Config) *JWT {
	return &JWT{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, now: time.Now}
}

func (j *JWT) Issue(user *models.User) (string, error) {
	if len(j.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	now := j.now()
	claims := &Claims{
		ID:            user.ID.Hex(),
		Role:          user.Role,
		Name:          user.Name,
		ArtisanStatus: user.ArtisanStatus,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(j.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	return signed, errors.Wrap(err, "sign token")
}

// Validate rejects every token while no secret is configured.
func (j *JWT) Validate(tokenString string) (*Claims, error) {
	if len(j.secret) == 0 {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Actor resolves a token into the identity the services act for.
func (j *JWT) Actor(tokenString string) (models.Actor, error) {
	claims, err := j.Validate(tokenString)
	if err != nil {
		return models.Actor{}, err
	}
	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return models.Actor{}, ErrInvalidToken
	}
	return models.Actor{ID: id, Role: claims.Role}, nil
}
