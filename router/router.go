package router

import (
	"chatbot-backend/controller"
	"chatbot-backend/middleware"

	"github.com/gin-gonic/gin"
)

func Register(ctl *controller.Controller) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.POST("/chat", ctl.Chat)
	r.GET("/history/:session_id", ctl.GetHistory)
	r.POST("/feedback", ctl.SubmitFeedback)
	r.GET("/health", ctl.Health)

	admin := r.Group("")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.POST("/upload", ctl.UploadDocument)
		admin.GET("/documents", ctl.ListDocuments)
		admin.DELETE("/documents/:id", ctl.DeleteDocument)
		admin.GET("/feedback", ctl.ListFeedback)
	}

	return r
}
