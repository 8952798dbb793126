package response

import "chatbot-backend/model"

type Source struct {
	Filename string `json:"filename"`
	Page     int64  `json:"page,omitempty"`
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

type HistoryMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`

	// ISO-8601格式时间戳
	Timestamp string `json:"timestamp"`
}

type HistoryResponse struct {
	History []HistoryMessage `json:"history"`
}

type FeedbackResponse struct {
	FeedbackID string `json:"feedback_id"`
	Message    string `json:"message"`
}

type ListFeedbackResponse struct {
	Feedback []model.Feedback `json:"feedback"`
}
