package controller

import (
	"chatbot-backend/model"
	"chatbot-backend/request"
	"chatbot-backend/response"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (ctl *Controller) SubmitFeedback(c *gin.Context) {
	var req request.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrInvalidRating.Error(),
		})
		return
	}

	feedback := &model.Feedback{
		FeedbackID: uuid.New().String(),
		SessionID:  req.SessionID,
		Question:   req.Question,
		Answer:     req.Answer,
		Rating:     req.Rating,
		Comments:   req.Comments,
	}
	if err := ctl.store.CreateFeedback(c.Request.Context(), feedback); err != nil {
		slog.Error(ErrSubmitFeedback.Error(), "session_id", req.SessionID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSubmitFeedback.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.FeedbackResponse{
		FeedbackID: feedback.FeedbackID,
		Message:    "Feedback submitted successfully",
	})
}

func (ctl *Controller) ListFeedback(c *gin.Context) {
	feedback, err := ctl.store.ListFeedback(c.Request.Context())
	if err != nil {
		slog.Error(ErrListFeedback.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrListFeedback.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.ListFeedbackResponse{
		Feedback: feedback,
	})
}
