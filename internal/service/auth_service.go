package service

import (
	"errors"
	"time"

	"chatapi/internal/entity"
	"chatapi/internal/repository"
	"chatapi/internal/token"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(email, password, firstName, lastName string) (*entity.User, *token.Pair, error)
	Login(email, password string) (*entity.User, *token.Pair, error)
}

type localAuthService struct {
	userRepository repository.UserRepository
	tokens         *token.Manager
	logger         *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, logger *logrus.Logger) AuthService {
	return &localAuthService{
		userRepository: userRepo,
		tokens:         tokens,
		logger:         logger,
	}
}

func (a *localAuthService) Register(email, password, firstName, lastName string) (*entity.User, *token.Pair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
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

	if err := a.userRepository.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	pair, err := a.tokens.IssuePair(user.UUID)
	if err != nil {
		return nil, nil, err
	}

	a.logger.WithField("user", user.UUID).Info("user registered")
	return user, pair, nil
}

// Login deliberately reports the same error for an unknown email and a wrong
// password so that accounts cannot be enumerated.
func (a *localAuthService) Login(email, password string) (*entity.User, *token.Pair, error) {
	user, err := a.userRepository.GetForLogin(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := a.tokens.IssuePair(user.UUID)
	if err != nil {
		return nil, nil, err
	}

	a.logger.WithField("user", user.UUID).Info("user logged in")
	return user, pair, nil
}
