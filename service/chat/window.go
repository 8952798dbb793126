package chat

import (
	"chatbot-backend/model"
	"context"
)

// DefaultTurns 默认带入模型上下文的对话轮数，一轮为一问一答
const DefaultTurns = 3

// Turn 一条带入模型上下文的消息，role为存储中的原始角色
type Turn struct {
	Role    string
	Message string
}

// MessageStore 会话消息存储，dao.Store满足该接口
type MessageStore interface {
	CreateMessage(ctx context.Context, sessionID, role, message string) error
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error)
}

// Window 会话上下文窗口
type Window struct {
	store MessageStore
}

func NewWindow(store MessageStore) *Window {
	return &Window{store: store}
}

// Recent 返回最近turns轮对话，按时间正序
// 存储按时间倒序返回最近2*turns条消息，翻转后得到正序
func (w *Window) Recent(ctx context.Context, sessionID string, turns int) ([]Turn, error) {
	if turns <= 0 {
		turns = DefaultTurns
	}

	messages, err := w.store.RecentMessages(ctx, sessionID, 2*turns)
	if err != nil {
		return nil, err
	}

	result := make([]Turn, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		result = append(result, Turn{
			Role:    messages[i].Role,
			Message: messages[i].Message,
		})
	}
	return result, nil
}
