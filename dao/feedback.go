package dao

import (
	"chatbot-backend/model"
	"context"
)

func (s *Store) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	return s.db.WithContext(ctx).Create(feedback).Error
}

func (s *Store) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	var feedback []model.Feedback
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}
