package service

import (
	"errors"
	"strings"
	"time"

	"chatapi/internal/entity"
	"chatapi/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserUpdate carries the mutable profile fields. Nil means "leave untouched"
// so partial updates work. Password is write-only: it only ever flows inward.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	IsActive  *bool
	Avatar    *string
	Password  *string
}

type UserService interface {
	Create(email, password, firstName, lastName string) (*entity.User, error)
	GetByUUID(uuid string) (*entity.User, error)
	List() ([]*entity.User, error)
	ListActive() ([]*entity.User, error)
	Search(query string) ([]*entity.User, error)
	Update(uuid string, upd UserUpdate) (*entity.User, error)
	Delete(uuid string) error
}

type localUserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &localUserService{userRepository: userRepo}
}

func (s *localUserService) Create(email, password, firstName, lastName string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	user := &entity.User{
		UUID:       id,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		IsActive:   true,
		DateJoined: time.Now(),
		Avatar:     entity.DefaultAvatar,

		Secret: entity.UserSecret{
			UserUUID: id,
			Hash:     string(hash),
		},
	}

	if err := s.userRepository.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *localUserService) GetByUUID(id string) (*entity.User, error) {
	user, err := s.userRepository.GetByUUID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *localUserService) List() ([]*entity.User, error) {
	return s.userRepository.List()
}

func (s *localUserService) ListActive() ([]*entity.User, error) {
	return s.userRepository.ListActive()
}

// Search matches the query as a case-insensitive substring of the email.
// An empty query is a validation error, not an empty result set.
func (s *localUserService) Search(query string) ([]*entity.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.userRepository.SearchByEmail(query)
}

func (s *localUserService) Update(id string, upd UserUpdate) (*entity.User, error) {
	user, err := s.GetByUUID(id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}

	if err := s.userRepository.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		secret := &entity.UserSecret{UserUUID: user.UUID, Hash: string(hash)}
		if err := s.userRepository.UpdateSecret(secret); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *localUserService) Delete(id string) error {
	if _, err := s.GetByUUID(id); err != nil {
		return err
	}
	return s.userRepository.Delete(id)
}
