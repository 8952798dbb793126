package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage 建立联合索引 (session_id, created_at)，只追加不修改
type ChatMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_session_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SessionID string    `gorm:"not null;index:idx_session_created" json:"session_id"`
	Role      string    `gorm:"not null" json:"role"`
	Message   string    `gorm:"type:text" json:"message"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
