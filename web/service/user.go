package service

import (
	"errors"

	"github.com/nenood/watchlist/caching"
	"github.com/nenood/watchlist/database"
	"github.com/nenood/watchlist/database/model"
	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/util/crypto"
)

const adminCacheKey = "user:admin"

// UserService manages the admin account. The optional cache only serves
// GetAdmin, which runs on every rendered page.
type UserService struct {
	cache *caching.Cache
}

func NewUserService(cache *caching.Cache) *UserService {
	return &UserService{cache: cache}
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAdmin returns the admin account, or ErrNotFound when none has been
// configured yet.
func (s *UserService) GetAdmin() (*model.User, error) {
	if v, ok := s.cache.Get(adminCacheKey); ok {
		user := v.(model.User)
		return &user, nil
	}
	user, err := s.GetUser(model.AdminID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(adminCacheKey, *user)
	return user, nil
}

// CheckUser returns the admin when username and password both match.
func (s *UserService) CheckUser(username string, password string) (*model.User, error) {
	user, err := s.GetUser(model.AdminID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if user.Username != username || !crypto.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateName changes the display name of the user with the given id.
func (s *UserService) UpdateName(id int, name string) error {
	db := database.GetDB()
	defer s.cache.Delete(adminCacheKey)

	result := db.Model(model.User{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdminCredentials overwrites the admin's username and password, creating
// the account with the default display name when it does not exist. It
// reports whether the account was created.
func (s *UserService) SetAdminCredentials(username string, password string) (bool, error) {
	if username == "" {
		return false, errors.New("username can not be empty")
	}
	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return false, err
	}

	db := database.GetDB()
	defer s.cache.Delete(adminCacheKey)

	user, err := s.GetUser(model.AdminID)
	if errors.Is(err, ErrNotFound) {
		user = &model.User{
			Id:           model.AdminID,
			Name:         model.DefaultAdminName,
			Username:     username,
			PasswordHash: hashedPassword,
		}
		return true, db.Create(user).Error
	} else if err != nil {
		return false, err
	}

	return false, db.Model(model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]any{"username": username, "password_hash": hashedPassword}).
		Error
}
