package dao

import (
	"chatbot-backend/model"
	"context"
)

func (s *Store) CreateDocument(ctx context.Context, doc *model.DocumentMetadata) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

func (s *Store) ListDocuments(ctx context.Context) ([]model.DocumentMetadata, error) {
	var docs []model.DocumentMetadata
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument 删除文档元数据，返回记录是否存在
func (s *Store) DeleteDocument(ctx context.Context, docID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("doc_id = ?", docID).
		Delete(&model.DocumentMetadata{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
