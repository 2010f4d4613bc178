package repository

import (
	"testing"
	"time"

	"chatapi/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMemberIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	chats := NewSQLiteChatRepository(db)

	u1 := makeUser(t, users, "one@x.com")
	u2 := makeUser(t, users, "two@x.com")
	chat := makeChat(t, chats, "pair", u1.UUID, u2.UUID)

	require.NoError(t, chats.AddMember(chat.UUID, u1.UUID))
	require.NoError(t, chats.AddMember(chat.UUID, u1.UUID))

	members, err := chats.MemberUUIDs(chat.UUID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestRemoveNonMemberIsNoOp(t *testing.T) {
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	chats := NewSQLiteChatRepository(db)

	u1 := makeUser(t, users, "one@x.com")
	u2 := makeUser(t, users, "two@x.com")
	outsider := makeUser(t, users, "outsider@x.com")
	chat := makeChat(t, chats, "pair", u1.UUID, u2.UUID)

	require.NoError(t, chats.RemoveMember(chat.UUID, outsider.UUID))

	members, err := chats.MemberUUIDs(chat.UUID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestDeleteChatCascadesToMessages(t *testing.T) {
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	chats := NewSQLiteChatRepository(db)
	messages := NewSQLiteMessageRepository(db)

	u1 := makeUser(t, users, "one@x.com")
	u2 := makeUser(t, users, "two@x.com")
	chat := makeChat(t, chats, "doomed", u1.UUID, u2.UUID)

	msg := &entity.Message{
		UUID:      uuid.New().String(),
		Text:      "hi",
		CreatedAt: time.Now(),
		UserUUID:  &u1.UUID,
		ChatUUID:  chat.UUID,
	}
	require.NoError(t, messages.Create(msg))

	require.NoError(t, chats.Delete(chat.UUID))

	_, err := messages.GetByUUID(msg.UUID)
	assert.Error(t, err)

	left, err := chats.MemberUUIDs(chat.UUID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	chats := NewSQLiteChatRepository(db)

	u1 := makeUser(t, users, "one@x.com")
	u2 := makeUser(t, users, "two@x.com")

	old := &entity.Chat{
		UUID: uuid.New().String(), Title: "old", CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, chats.Create(old, []string{u1.UUID, u2.UUID}))
	recent := &entity.Chat{
		UUID: uuid.New().String(), Title: "recent", CreatedAt: time.Now(),
	}
	require.NoError(t, chats.Create(recent, []string{u1.UUID, u2.UUID}))

	listed, err := chats.List()
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "recent", listed[0].Title)
	assert.Equal(t, "old", listed[1].Title)
}

func TestReplaceMembers(t *testing.T) {
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	chats := NewSQLiteChatRepository(db)

	u1 := makeUser(t, users, "one@x.com")
	u2 := makeUser(t, users, "two@x.com")
	u3 := makeUser(t, users, "three@x.com")
	chat := makeChat(t, chats, "pair", u1.UUID, u2.UUID)

	require.NoError(t, chats.ReplaceMembers(chat.UUID, []string{u2.UUID, u3.UUID}))

	members, err := chats.MemberUUIDs(chat.UUID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{u2.UUID, u3.UUID}, members)
}
