package controller

import (
	"chatbot-backend/request"
	"chatbot-backend/response"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// historyLimit 历史接口单次返回的最大消息数
const historyLimit = 10

func (ctl *Controller) Chat(c *gin.Context) {
	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	answer, sources, err := ctl.chat.Ask(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		slog.Error(ErrChat.Error(), "session_id", req.SessionID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrChat.Error(),
		})
		return
	}

	resp := response.ChatResponse{
		Answer:  answer,
		Sources: make([]response.Source, 0, len(sources)),
	}
	for _, source := range sources {
		resp.Sources = append(resp.Sources, response.Source{
			Filename: source.Filename,
			Page:     source.Page,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (ctl *Controller) GetHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	messages, err := ctl.store.History(c.Request.Context(), sessionID, historyLimit)
	if err != nil {
		slog.Error(ErrGetHistory.Error(), "session_id", sessionID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetHistory.Error(),
		})
		return
	}

	resp := response.HistoryResponse{
		History: make([]response.HistoryMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.History = append(resp.History, response.HistoryMessage{
			Role:      msg.Role,
			Message:   msg.Message,
			Timestamp: msg.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, resp)
}
