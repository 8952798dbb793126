package dao

import (
	"chatbot-backend/model"
	"context"
)

func (s *Store) CreateMessage(ctx context.Context, sessionID, role, message string) error {
	msg := model.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Message:   message,
	}
	return s.db.WithContext(ctx).Create(&msg).Error
}

// History 按时间正序返回会话消息
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// RecentMessages 按时间倒序返回最近的消息
func (s *Store) RecentMessages(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
