package embedding

import (
	"context"
	"log/slog"
)

// Dimension text-embedding-004 的向量维度
const Dimension = 768

// Provider 外部嵌入模型客户端，langchaingo的embeddings.Embedder满足该接口
type Provider interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Result 嵌入结果
// Degraded为true表示调用失败，Vector退化为全零向量
type Result struct {
	Vector   []float32
	Degraded bool
}

// Gateway 嵌入网关，保证任何情况下都返回768维向量
type Gateway struct {
	provider Provider
}

func NewGateway(provider Provider) *Gateway {
	return &Gateway{provider: provider}
}

// Embed 调用嵌入模型，失败时退化为全零向量，不向上抛错
func (g *Gateway) Embed(ctx context.Context, text string) Result {
	vector, err := g.provider.EmbedQuery(ctx, text)
	if err != nil {
		slog.Error("failed to generate embedding, falling back to zero vector", "err", err)
		return zeroResult()
	}

	if len(vector) != Dimension {
		slog.Error("unexpected embedding dimension, falling back to zero vector",
			"got", len(vector),
			"want", Dimension,
		)
		return zeroResult()
	}

	return Result{Vector: vector}
}

func zeroResult() Result {
	return Result{
		Vector:   make([]float32, Dimension),
		Degraded: true,
	}
}
