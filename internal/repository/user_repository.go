package repository

import (
	"strings"

	"chatapi/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(user *entity.User) error

	GetByUUID(uuid string) (*entity.User, error)
	GetForLogin(email string) (*entity.User, error)

	List() ([]*entity.User, error)
	ListActive() ([]*entity.User, error)
	SearchByEmail(query string) ([]*entity.User, error)

	Update(user *entity.User) error
	UpdateSecret(secret *entity.UserSecret) error
	Delete(uuid string) error
}

type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	return repo.db.Create(user).Error
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetForLogin(email string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Preload("Secret").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) List() ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Order("date_joined DESC").Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) ListActive() ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Where("is_active = ?", true).Order("date_joined DESC").Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) SearchByEmail(query string) ([]*entity.User, error) {
	var users []*entity.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := repo.db.Where("lower(email) LIKE ?", pattern).Order("date_joined DESC").Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) Update(user *entity.User) error {
	return repo.db.Omit(clause.Associations).Save(user).Error
}

func (repo *SQLiteUserRepository) UpdateSecret(secret *entity.UserSecret) error {
	return repo.db.Save(secret).Error
}

// Delete removes the account and clears every reference pointing at it:
// authored messages and administered chats survive with a NULL reference,
// membership rows are dropped outright.
func (repo *SQLiteUserRepository) Delete(uuid string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Message{}).Where("user_uuid = ?", uuid).Update("user_uuid", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Chat{}).Where("admin_uuid = ?", uuid).Update("admin_uuid", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM chat_members WHERE user_uuid = ?", uuid).Error; err != nil {
			return err
		}
		if err := tx.Where("user_uuid = ?", uuid).Delete(&entity.UserSecret{}).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&entity.User{}).Error
	})
}
