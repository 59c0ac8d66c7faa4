package auth_module

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/inethub/rrtool/database/entities"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore interface {
	ByEmail(email string) (*entities.User, error)
	ByID(id uint) (*entities.User, error)
	Create(user *entities.User) error
}

type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) ByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := s.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) ByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) Create(user *entities.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := s.DB.Create(user).Error; err != nil {
		return fmt.Errorf("user create failed: %w", err)
	}
	return nil
}

// MemoryUserStore backs handler tests without a database.
type MemoryUserStore struct {
	users  map[uint]*entities.User
	nextID uint
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[uint]*entities.User{}, nextID: 1}
}

func (s *MemoryUserStore) ByEmail(email string) (*entities.User, error) {
	for _, user := range s.users {
		if user.Email == strings.ToLower(email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) ByID(id uint) (*entities.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) Create(user *entities.User) error {
	user.ID = s.nextID
	user.Email = strings.ToLower(user.Email)
	s.nextID++
	copied := *user
	s.users[copied.ID] = &copied
	return nil
}
