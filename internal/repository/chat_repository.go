package repository

import (
	"chatapi/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	Create(chat *entity.Chat, memberUUIDs []string) error

	GetByUUID(uuid string) (*entity.Chat, error)
	List() ([]*entity.Chat, error)

	Update(chat *entity.Chat) error
	ReplaceMembers(chatUUID string, memberUUIDs []string) error
	Delete(uuid string) error

	AddMember(chatUUID, userUUID string) error
	RemoveMember(chatUUID, userUUID string) error
	MemberUUIDs(chatUUID string) ([]string, error)
}

type SQLiteChatRepository struct {
	db *gorm.DB
}

func NewSQLiteChatRepository(db *gorm.DB) ChatRepository {
	return &SQLiteChatRepository{db}
}

func (repo *SQLiteChatRepository) Create(chat *entity.Chat, memberUUIDs []string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		for _, member := range memberUUIDs {
			if err := addMember(tx, chat.UUID, member); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *SQLiteChatRepository) GetByUUID(uuid string) (*entity.Chat, error) {
	var chat entity.Chat
	if err := repo.db.Preload("Members").Where("uuid = ?", uuid).First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (repo *SQLiteChatRepository) List() ([]*entity.Chat, error) {
	var chats []*entity.Chat
	err := repo.db.Preload("Members").Order("created_at DESC").Find(&chats).Error
	return chats, err
}

// Update touches only the chat row; the member set is managed through the
// dedicated membership operations.
func (repo *SQLiteChatRepository) Update(chat *entity.Chat) error {
	return repo.db.Omit(clause.Associations).Save(chat).Error
}

func (repo *SQLiteChatRepository) ReplaceMembers(chatUUID string, memberUUIDs []string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM chat_members WHERE chat_uuid = ?", chatUUID).Error; err != nil {
			return err
		}
		for _, member := range memberUUIDs {
			if err := addMember(tx, chatUUID, member); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete cascades to the chat's messages and membership rows.
func (repo *SQLiteChatRepository) Delete(uuid string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_uuid = ?", uuid).Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM chat_members WHERE chat_uuid = ?", uuid).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&entity.Chat{}).Error
	})
}

// AddMember is idempotent: the join table's composite key collapses duplicates.
func (repo *SQLiteChatRepository) AddMember(chatUUID, userUUID string) error {
	return addMember(repo.db, chatUUID, userUUID)
}

// RemoveMember is a no-op when the user is not a member.
func (repo *SQLiteChatRepository) RemoveMember(chatUUID, userUUID string) error {
	return repo.db.Exec("DELETE FROM chat_members WHERE chat_uuid = ? AND user_uuid = ?", chatUUID, userUUID).Error
}

func (repo *SQLiteChatRepository) MemberUUIDs(chatUUID string) ([]string, error) {
	var uuids []string
	err := repo.db.Raw("SELECT user_uuid FROM chat_members WHERE chat_uuid = ?", chatUUID).Scan(&uuids).Error
	return uuids, err
}

func addMember(tx *gorm.DB, chatUUID, userUUID string) error {
	return tx.Exec("INSERT OR IGNORE INTO chat_members (chat_uuid, user_uuid) VALUES (?, ?)", chatUUID, userUUID).Error
}
