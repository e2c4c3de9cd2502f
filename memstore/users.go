package memstore

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

type Users struct {
	t *table[models.User]
	// emailMu serializes writes so the unique email check holds.
	emailMu sync.Mutex
}

func NewUsers() *Users {
	return &Users{t: newTable[models.User]()}
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.t.get(id)
	if !ok {
		return nil, notFound("users.FindByID")
	}
	return &u, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	found := s.t.filter(func(u models.User) bool { return u.Email == email })
	if len(found) == 0 {
		return nil, notFound("users.FindByEmail")
	}
	return &found[0], nil
}

func (s *Users) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	set := idSet(ids)
	return s.t.filter(func(u models.User) bool {
		_, ok := set[u.ID]
		return ok
	}), nil
}

func (s *Users) Find(_ context.Context, filter models.UserFilter) ([]models.User, error) {
	return s.t.filter(func(u models.User) bool { return filter.Role == "" || u.Role == filter.Role }), nil
}

func (s *Users) ExistsWithRole(_ context.Context, role models.Role) (bool, error) {
	return len(s.t.filter(func(u models.User) bool { return u.Role == role })) > 0, nil
}

func (s *Users) Insert(_ context.Context, user *models.User) error {
	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	if len(s.t.filter(func(u models.User) bool { return u.Email == user.Email })) > 0 {
		return errors.Wrap(errs.ErrDuplicateKey, "users.Insert")
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.t.put(user.ID, *user)
	return nil
}

func (s *Users) Save(_ context.Context, user *models.User) error {
	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	if _, ok := s.t.get(user.ID); !ok {
		return notFound("users.Save")
	}
	s.t.put(user.ID, *user)
	return nil
}

func (s *Users) UpdateProfile(_ context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	u, ok := s.t.get(id)
	if !ok {
		return nil, notFound("users.UpdateProfile")
	}
	if len(s.t.filter(func(o models.User) bool { return o.ID != id && o.Email == upd.Email })) > 0 {
		return nil, errors.Wrap(errs.ErrDuplicateKey, "users.UpdateProfile")
	}
	u.Name = upd.Name
	u.Email = upd.Email
	u.Bio = upd.Bio
	u.PortfolioLink = upd.PortfolioLink
	u.Instagram = upd.Instagram
	u.Location = upd.Location
	u.Phone = upd.Phone
	u.Facebook = upd.Facebook
	u.Twitter = upd.Twitter
	u.StoreAnnouncement = upd.StoreAnnouncement
	if upd.ProfileImage != "" {
		u.ProfileImage = upd.ProfileImage
	}
	if upd.BannerImage != "" {
		u.BannerImage = upd.BannerImage
	}
	if upd.LogoImage != "" {
		u.LogoImage = upd.LogoImage
	}
	if upd.StoreColor != "" {
		u.StoreColor = upd.StoreColor
	}
	s.t.put(id, u)
	return &u, nil
}

func (s *Users) Delete(_ context.Context, id primitive.ObjectID) error {
	if !s.t.remove(id) {
		return notFound("users.Delete")
	}
	return nil
}
