package chat

import (
	"chatbot-backend/model"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

const (
	generateTemperature = 0.7
	generateTopP        = 0.95
	generateTopK        = 40
	generateMaxTokens   = 2048
)

//go:embed prompts/system.txt
var systemPrompt string

// Generator 生成模型客户端封装
type Generator struct {
	llm llms.Model
}

func NewGenerator(llm llms.Model) *Generator {
	return &Generator{llm: llm}
}

// Answer 调用生成模型回答问题
// chunks为检索召回的原文，拼入开场消息作为依据；
// 历史消息在这里映射为模型的角色词表（user->human, assistant->ai）
func (g *Generator) Answer(ctx context.Context, question string, history []Turn, chunks []string) (string, error) {
	opening := systemPrompt
	if len(chunks) > 0 {
		opening += "\n\nDocument context:\n" + strings.Join(chunks, "\n")
	}

	// Gemini不接受system角色，开场指令作为user消息发送
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, opening),
	}

	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == model.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, turn.Message))
	}

	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, question))

	resp, err := g.llm.GenerateContent(ctx, content,
		llms.WithTemperature(generateTemperature),
		llms.WithTopP(generateTopP),
		llms.WithTopK(generateTopK),
		llms.WithMaxTokens(generateMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from generative model")
	}

	return resp.Choices[0].Content, nil
}

// Check 用于健康检查的最小生成调用
func (g *Generator) Check(ctx context.Context) error {
	_, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, "Hello")},
		llms.WithMaxTokens(8),
	)
	return err
}
