package controller

import (
	"chatbot-backend/model"
	"chatbot-backend/service/retrieval"
	"context"
	"io"
)

// Ingestor 文档入库入口，ingest.Ingestor满足该接口
type Ingestor interface {
	Ingest(ctx context.Context, file io.Reader, filename string) (string, int, error)
	Delete(ctx context.Context, docID string) (bool, error)
}

// ChatService 问答入口，chat.Service满足该接口
type ChatService interface {
	Ask(ctx context.Context, sessionID, question string) (string, []retrieval.Source, error)
}

// Datastore 持久化层入口，dao.Store满足该接口
type Datastore interface {
	History(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error)
	ListDocuments(ctx context.Context) ([]model.DocumentMetadata, error)
	CreateFeedback(ctx context.Context, feedback *model.Feedback) error
	ListFeedback(ctx context.Context) ([]model.Feedback, error)
}

// HealthCheck 单个依赖的健康探测
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Controller struct {
	ingestor Ingestor
	chat     ChatService
	store    Datastore
	checks   []HealthCheck
}

func New(ingestor Ingestor, chat ChatService, store Datastore, checks []HealthCheck) *Controller {
	return &Controller{
		ingestor: ingestor,
		chat:     chat,
		store:    store,
		checks:   checks,
	}
}
