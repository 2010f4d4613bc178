package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChatRequiresTwoMembers(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")

	_, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID})
	assert.ErrorIs(t, err, ErrNotEnoughMembers)

	chats, listErr := env.chats.List()
	require.NoError(t, listErr)
	assert.Empty(t, chats, "a rejected chat must not be persisted")
}

func TestCreateChatDeduplicatesMembers(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")
	u2 := env.makeUser(t, "two@x.com")

	chat, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u2.UUID, u1.UUID, u2.UUID})
	require.NoError(t, err)
	assert.Len(t, chat.Members, 2)
}

// Duplicates collapsing to one entry means a repeated single id is still
// below the minimum.
func TestCreateChatDuplicateOnlyMemberRejected(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")

	_, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u1.UUID})
	assert.ErrorIs(t, err, ErrNotEnoughMembers)
}

func TestCreateChatUnknownMember(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")

	_, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, "no-such-user"})
	assert.ErrorIs(t, err, ErrUnknownMember)
}

func TestCreateChatAssignsAdminAndDefaults(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")
	u2 := env.makeUser(t, "two@x.com")

	chat, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u2.UUID})
	require.NoError(t, err)
	require.NotNil(t, chat.AdminUUID)
	assert.Equal(t, u1.UUID, *chat.AdminUUID)
	assert.True(t, chat.IsPrivate)
	assert.NotEmpty(t, chat.UUID)
}

func TestAddMembersIdempotent(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")
	u2 := env.makeUser(t, "two@x.com")

	chat, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u2.UUID})
	require.NoError(t, err)

	require.NoError(t, env.chats.AddMembers(chat.UUID, []string{u2.UUID}))

	updated, err := env.chats.GetByUUID(chat.UUID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 2)
}

func TestAddMembersUnknownChat(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")

	err := env.chats.AddMembers("no-such-chat", []string{u1.UUID})
	assert.ErrorIs(t, err, ErrUnknownChat)
}

func TestAddMembersUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")
	u2 := env.makeUser(t, "two@x.com")

	chat, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u2.UUID})
	require.NoError(t, err)

	err = env.chats.AddMembers(chat.UUID, []string{"no-such-user"})
	assert.ErrorIs(t, err, ErrUnknownMember)
}

func TestRemoveNonMemberNoOp(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")
	u2 := env.makeUser(t, "two@x.com")
	outsider := env.makeUser(t, "out@x.com")

	chat, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u2.UUID})
	require.NoError(t, err)

	require.NoError(t, env.chats.RemoveMember(chat.UUID, outsider.UUID))

	updated, err := env.chats.GetByUUID(chat.UUID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 2)
}

func TestUpdateChatReplacesMemberSet(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.makeUser(t, "one@x.com")
	u2 := env.makeUser(t, "two@x.com")
	u3 := env.makeUser(t, "three@x.com")

	chat, err := env.chats.Create("T", nil, u1.UUID, []string{u1.UUID, u2.UUID})
	require.NoError(t, err)

	title := "renamed"
	updated, err := env.chats.Update(chat.UUID, ChatUpdate{
		Title:   &title,
		Members: []string{u2.UUID, u3.UUID},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Len(t, updated.Members, 2)

	_, err = env.chats.Update(chat.UUID, ChatUpdate{Members: []string{u1.UUID}})
	assert.ErrorIs(t, err, ErrNotEnoughMembers)
}
