package request

type ChatRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

type FeedbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`

	// 评分范围 1-5，范围校验在controller中进行以返回明确的错误信息
	// 不加required校验，缺省的0同样走范围校验路径
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}
