package model

import "time"

// Feedback 用户对单轮问答的评分，只追加不修改
type Feedback struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	FeedbackID string    `gorm:"not null;uniqueIndex" json:"feedback_id"`
	SessionID  string    `gorm:"not null;index" json:"session_id"`
	Question   string    `gorm:"type:text" json:"question"`
	Answer     string    `gorm:"type:text" json:"answer"`

	// 评分范围 1-5
	Rating   int    `gorm:"not null" json:"rating"`
	Comments string `gorm:"type:text" json:"comments"`
}

func (Feedback) TableName() string {
	return "feedback"
}
