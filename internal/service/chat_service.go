package service

import (
	"errors"
	"time"

	"chatapi/internal/entity"
	"chatapi/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatUpdate carries the mutable chat fields for full or partial updates.
// A non-nil Members slice replaces the whole member set and is validated
// like the create path.
type ChatUpdate struct {
	Title     *string
	IsPrivate *bool
	Avatar    *string
	Members   []string
}

type ChatService interface {
	Create(title string, isPrivate *bool, adminUUID string, members []string) (*entity.Chat, error)
	GetByUUID(uuid string) (*entity.Chat, error)
	List() ([]*entity.Chat, error)
	Update(uuid string, upd ChatUpdate) (*entity.Chat, error)
	Delete(uuid string) error

	AddMembers(chatUUID string, members []string) error
	RemoveMember(chatUUID, userUUID string) error
}

type localChatService struct {
	chatRepository repository.ChatRepository
	userRepository repository.UserRepository
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) ChatService {
	return &localChatService{
		chatRepository: chatRepo,
		userRepository: userRepo,
	}
}

func (s *localChatService) Create(title string, isPrivate *bool, adminUUID string, members []string) (*entity.Chat, error) {
	members = dedupe(members)
	if len(members) < 2 {
		return nil, ErrNotEnoughMembers
	}
	if err := s.resolveMembers(members); err != nil {
		return nil, err
	}

	private := true
	if isPrivate != nil {
		private = *isPrivate
	}

	chat := &entity.Chat{
		UUID:      uuid.New().String(),
		Title:     title,
		IsPrivate: private,
		Avatar:    entity.DefaultAvatar,
		CreatedAt: time.Now(),
		AdminUUID: &adminUUID,
	}

	if err := s.chatRepository.Create(chat, members); err != nil {
		return nil, err
	}
	return s.GetByUUID(chat.UUID)
}

func (s *localChatService) GetByUUID(id string) (*entity.Chat, error) {
	chat, err := s.chatRepository.GetByUUID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return chat, err
}

func (s *localChatService) List() ([]*entity.Chat, error) {
	return s.chatRepository.List()
}

func (s *localChatService) Update(id string, upd ChatUpdate) (*entity.Chat, error) {
	chat, err := s.GetByUUID(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		chat.Title = *upd.Title
	}
	if upd.IsPrivate != nil {
		chat.IsPrivate = *upd.IsPrivate
	}
	if upd.Avatar != nil {
		chat.Avatar = *upd.Avatar
	}

	if upd.Members != nil {
		members := dedupe(upd.Members)
		if len(members) < 2 {
			return nil, ErrNotEnoughMembers
		}
		if err := s.resolveMembers(members); err != nil {
			return nil, err
		}
		if err := s.chatRepository.ReplaceMembers(chat.UUID, members); err != nil {
			return nil, err
		}
	}

	chat.Members = nil
	if err := s.chatRepository.Update(chat); err != nil {
		return nil, err
	}
	return s.GetByUUID(chat.UUID)
}

func (s *localChatService) Delete(id string) error {
	if _, err := s.GetByUUID(id); err != nil {
		return err
	}
	return s.chatRepository.Delete(id)
}

// AddMembers resolves each user and attaches it to the chat. Adds are
// idempotent, and deliberately not grouped in one transaction: each member
// is attached independently, matching the per-identifier semantics of the
// operation.
func (s *localChatService) AddMembers(chatUUID string, members []string) error {
	if _, err := s.chatRepository.GetByUUID(chatUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownChat
		}
		return err
	}

	for _, member := range dedupe(members) {
		if _, err := s.userRepository.GetByUUID(member); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownMember
			}
			return err
		}
		if err := s.chatRepository.AddMember(chatUUID, member); err != nil {
			return err
		}
	}
	return nil
}

func (s *localChatService) RemoveMember(chatUUID, userUUID string) error {
	if _, err := s.GetByUUID(chatUUID); err != nil {
		return err
	}
	return s.chatRepository.RemoveMember(chatUUID, userUUID)
}

func (s *localChatService) resolveMembers(members []string) error {
	for _, member := range members {
		if _, err := s.userRepository.GetByUUID(member); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownMember
			}
			return err
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
