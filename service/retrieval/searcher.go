package retrieval

import (
	"context"
	"log/slog"
)

const DefaultTopK = 5

// VectorIndex 向量库检索接口
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, topK int, expr string) ([]Match, error)
}

// Searcher 相似度检索包装，检索失败时退化为空结果，不向上抛错
type Searcher struct {
	index VectorIndex
}

func NewSearcher(index VectorIndex) *Searcher {
	return &Searcher{index: index}
}

func (s *Searcher) Search(ctx context.Context, vector []float32, topK int) []Match {
	if len(vector) == 0 {
		slog.Warn("empty query vector, skipping similarity search")
		return nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}

	matches, err := s.index.Search(ctx, vector, topK, "")
	if err != nil {
		slog.Error("similarity search failed, returning empty matches", "err", err)
		return nil
	}
	return matches
}
