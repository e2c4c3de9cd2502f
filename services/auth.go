package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.Named("auth"),
		now:    time.Now,
	}
}

// Register creates a user. Unknown roles fall back to customer and only one admin may exist.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.Validation("name is required")
	}
	if !isValidEmail(in.Email) {
		return nil, errs.Validation("invalid email format")
	}
	if len(in.Password) < 8 {
		return nil, errs.Validation("password must be at least 8 characters")
	}

	role := models.ParseRole(in.Role)
	if role == models.RoleAdmin {
		exists, err := s.users.ExistsWithRole(ctx, models.RoleAdmin)
		if err != nil {
			return nil, errs.Internal("failed to create user", err)
		}
		if exists {
			return nil, errs.Forbidden("admin already exists")
		}
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, errs.Internal("failed to process password", err)
	}
	user := NewUser(in.Name, in.Email, hashed, role, s.now())
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			return nil, errs.Validation("email already exists")
		}
		return nil, errs.Internal("failed to create user", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errs.Internal("failed to generate token", err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.String("role", string(role)))
	return &Session{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Internal("failed to log in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.Unauthorized("invalid credentials")
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errs.Internal("failed to generate token", err)
	}
	return &Session{User: user, Token: token}, nil
}

// NewUser builds a user document with the profile defaults applied.
func NewUser(name, email, hashedPassword string, role models.Role, now time.Time) *models.User {
	return &models.User{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Email:         email,
		Password:      hashedPassword,
		Role:          role,
		ArtisanStatus: models.ArtisanStatusNone,
		StoreColor:    "#fff",
		CreatedAt:     now,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// EnsureAdmin creates the admin account, or resets the password of the existing admin.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return false, errs.Internal("failed to process password", err)
	}
	admins, err := s.users.Find(ctx, models.UserFilter{Role: models.RoleAdmin})
	if err != nil {
		return false, errs.Internal("failed to look up admin", err)
	}
	if len(admins) > 0 {
		admin := admins[0]
		admin.Password = hashed
		if err := s.users.Save(ctx, &admin); err != nil {
			return false, errs.Internal("failed to reset admin password", err)
		}
		s.logger.Info("admin password reset", zap.String("user_id", admin.ID.Hex()))
		return false, nil
	}

	admin := NewUser("Admin User", email, hashed, models.RoleAdmin, s.now())
	if err := s.users.Insert(ctx, admin); err != nil {
		return false, errs.Internal("failed to create admin", err)
	}
	s.logger.Info("admin created", zap.String("user_id", admin.ID.Hex()), zap.String("email", email))
	return true, nil
}
