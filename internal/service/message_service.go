package service

import (
	"errors"
	"time"

	"chatapi/internal/entity"
	"chatapi/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageUpdate carries the mutable message fields: the body may be edited
// and the read flag flipped. Nothing else is client-settable after creation.
type MessageUpdate struct {
	Text   *string
	IsRead *bool
}

type MessageService interface {
	Create(text, chatUUID, authorUUID string) (*entity.Message, error)
	GetByUUID(uuid string) (*entity.Message, error)
	List() ([]*entity.Message, error)
	Unread(userUUID string) ([]*entity.Message, error)
	Update(uuid string, upd MessageUpdate) (*entity.Message, error)
	Delete(uuid string) error
}

type localMessageService struct {
	messageRepository repository.MessageRepository
	chatRepository    repository.ChatRepository
}

func NewMessageService(messageRepo repository.MessageRepository, chatRepo repository.ChatRepository) MessageService {
	return &localMessageService{
		messageRepository: messageRepo,
		chatRepository:    chatRepo,
	}
}

func (s *localMessageService) Create(text, chatUUID, authorUUID string) (*entity.Message, error) {
	if _, err := s.chatRepository.GetByUUID(chatUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownChat
		}
		return nil, err
	}

	message := &entity.Message{
		UUID:      uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now(),
		IsRead:    false,
		UserUUID:  &authorUUID,
		ChatUUID:  chatUUID,
	}

	if err := s.messageRepository.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *localMessageService) GetByUUID(id string) (*entity.Message, error) {
	message, err := s.messageRepository.GetByUUID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return message, err
}

func (s *localMessageService) List() ([]*entity.Message, error) {
	return s.messageRepository.List()
}

func (s *localMessageService) Unread(userUUID string) ([]*entity.Message, error) {
	return s.messageRepository.Unread(userUUID)
}

func (s *localMessageService) Update(id string, upd MessageUpdate) (*entity.Message, error) {
	message, err := s.GetByUUID(id)
	if err != nil {
		return nil, err
	}

	if upd.Text != nil {
		message.Text = *upd.Text
	}
	if upd.IsRead != nil {
		message.IsRead = *upd.IsRead
	}

	if err := s.messageRepository.Update(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *localMessageService) Delete(id string) error {
	if _, err := s.GetByUUID(id); err != nil {
		return err
	}
	return s.messageRepository.Delete(id)
}
