package repository

import (
	"chatapi/internal/entity"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *entity.Message) error

	GetByUUID(uuid string) (*entity.Message, error)
	List() ([]*entity.Message, error)
	Unread(userUUID string) ([]*entity.Message, error)

	Update(message *entity.Message) error
	Delete(uuid string) error
}

type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) Create(message *entity.Message) error {
	return repo.db.Create(message).Error
}

func (repo *SQLiteMessageRepository) GetByUUID(uuid string) (*entity.Message, error) {
	var message entity.Message
	if err := repo.db.Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (repo *SQLiteMessageRepository) List() ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// Unread returns the unread messages of every chat the user is a member of,
// newest first.
func (repo *SQLiteMessageRepository) Unread(userUUID string) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.db.
		Joins("JOIN chat_members ON chat_members.chat_uuid = messages.chat_uuid").
		Where("chat_members.user_uuid = ? AND messages.is_read = ?", userUUID, false).
		Order("messages.created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (repo *SQLiteMessageRepository) Update(message *entity.Message) error {
	return repo.db.Save(message).Error
}

func (repo *SQLiteMessageRepository) Delete(uuid string) error {
	return repo.db.Where("uuid = ?", uuid).Delete(&entity.Message{}).Error
}
