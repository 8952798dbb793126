package chat

import (
	"chatbot-backend/model"
	"chatbot-backend/service/embedding"
	"chatbot-backend/service/retrieval"
	"context"
	"fmt"
	"log/slog"
)

// Embedder 问题向量化入口，embedding.Gateway满足该接口
type Embedder interface {
	Embed(ctx context.Context, text string) embedding.Result
}

// Retriever 相似度检索入口，retrieval.Searcher满足该接口
type Retriever interface {
	Search(ctx context.Context, vector []float32, topK int) []retrieval.Match
}

// Answerer 生成模型入口，Generator满足该接口
type Answerer interface {
	Answer(ctx context.Context, question string, history []Turn, chunks []string) (string, error)
}

// Service 问答流程编排
type Service struct {
	messages  MessageStore
	window    *Window
	embedder  Embedder
	retriever Retriever
	answerer  Answerer
	topK      int
}

func NewService(messages MessageStore, window *Window, embedder Embedder, retriever Retriever, answerer Answerer, topK int) *Service {
	if topK <= 0 {
		topK = retrieval.DefaultTopK
	}
	return &Service{
		messages:  messages,
		window:    window,
		embedder:  embedder,
		retriever: retriever,
		answerer:  answerer,
		topK:      topK,
	}
}

// Ask 处理一轮问答：存用户消息、取上下文窗口、检索、生成、存助手消息
// 助手消息持久化失败只记日志，已生成的回答仍然返回
func (s *Service) Ask(ctx context.Context, sessionID, question string) (string, []retrieval.Source, error) {
	if err := s.messages.CreateMessage(ctx, sessionID, model.RoleUser, question); err != nil {
		return "", nil, fmt.Errorf("failed to store user message: %v", err)
	}

	history, err := s.window.Recent(ctx, sessionID, DefaultTurns)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load conversation window: %v", err)
	}

	// 嵌入失败时得到全零向量，检索自然返回空结果，问答继续走无依据路径
	result := s.embedder.Embed(ctx, question)
	if result.Degraded {
		slog.Warn("question embedding degraded to zero vector", "session_id", sessionID)
	}

	matches := s.retriever.Search(ctx, result.Vector, s.topK)

	// 阈值过滤只决定返回给用户的引用来源，
	// 送入生成模型的依据文本包含全部召回chunk
	_, sources := retrieval.AssembleContext(matches)
	chunks := retrieval.Texts(matches)

	answer, err := s.answerer.Answer(ctx, question, history, chunks)
	if err != nil {
		return "", nil, err
	}

	if err := s.messages.CreateMessage(ctx, sessionID, model.RoleAssistant, answer); err != nil {
		slog.Error("failed to store assistant message", "session_id", sessionID, "err", err)
	}

	return answer, sources, nil
}
