package chat

import (
	"chatbot-backend/model"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMessageStore 按追加顺序保存消息，RecentMessages按时间倒序返回
type fakeMessageStore struct {
	messages  []model.ChatMessage
	createErr error
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, sessionID, role, message string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.messages = append(f.messages, model.ChatMessage{
		CreatedAt: time.Now().Add(time.Duration(len(f.messages)) * time.Second),
		SessionID: sessionID,
		Role:      role,
		Message:   message,
	})
	return nil
}

func (f *fakeMessageStore) RecentMessages(_ context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	var result []model.ChatMessage
	for i := len(f.messages) - 1; i >= 0 && len(result) < limit; i-- {
		if f.messages[i].SessionID == sessionID {
			result = append(result, f.messages[i])
		}
	}
	return result, nil
}

func seedConversation(store *fakeMessageStore, sessionID string, turns int) {
	for i := 0; i < turns; i++ {
		store.CreateMessage(context.Background(), sessionID, model.RoleUser, fmt.Sprintf("question %d", i))
		store.CreateMessage(context.Background(), sessionID, model.RoleAssistant, fmt.Sprintf("answer %d", i))
	}
}

func TestWindow_RecentReturnsLastTurnsChronologically(t *testing.T) {
	store := &fakeMessageStore{}
	seedConversation(store, "s1", 5) // 10 messages

	window := NewWindow(store)
	turns, err := window.Recent(context.Background(), "s1", 3)

	require.NoError(t, err)
	require.Len(t, turns, 6)

	assert.Equal(t, Turn{Role: model.RoleUser, Message: "question 2"}, turns[0])
	assert.Equal(t, Turn{Role: model.RoleAssistant, Message: "answer 2"}, turns[1])
	assert.Equal(t, Turn{Role: model.RoleUser, Message: "question 4"}, turns[4])
	assert.Equal(t, Turn{Role: model.RoleAssistant, Message: "answer 4"}, turns[5])
}

func TestWindow_FewerMessagesThanRequested(t *testing.T) {
	store := &fakeMessageStore{}
	seedConversation(store, "s1", 1) // 2 messages

	window := NewWindow(store)
	turns, err := window.Recent(context.Background(), "s1", 3)

	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, model.RoleAssistant, turns[1].Role)
}

func TestWindow_EmptySession(t *testing.T) {
	window := NewWindow(&fakeMessageStore{})

	turns, err := window.Recent(context.Background(), "missing", 3)

	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestWindow_RolesPassedThroughUnchanged(t *testing.T) {
	store := &fakeMessageStore{}
	seedConversation(store, "s1", 2)

	window := NewWindow(store)
	turns, err := window.Recent(context.Background(), "s1", 2)

	require.NoError(t, err)
	for i, turn := range turns {
		if i%2 == 0 {
			assert.Equal(t, model.RoleUser, turn.Role)
		} else {
			assert.Equal(t, model.RoleAssistant, turn.Role)
		}
	}
}
