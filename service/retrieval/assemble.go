package retrieval

import (
	"fmt"
	"strings"
)

// ScoreThreshold 引用来源的相似度阈值，严格大于才计入
const ScoreThreshold float32 = 0.7

// Metadata 向量库中每个chunk携带的元数据
type Metadata struct {
	DocID    string
	Filename string
	ChunkID  int64
	Text     string

	// 近似页码 chunk_index/5+1，并非真实分页
	Page int64
}

// Match 相似度检索的单条结果
type Match struct {
	ID       string
	Score    float32
	Metadata Metadata
}

// Source 引用来源，按(filename, page)判等去重
type Source struct {
	Filename string
	Page     int64
}

// AssembleContext 过滤相似度高于阈值的结果，拼接引用文本并生成去重后的来源列表
// 没有结果过阈值时返回空文本和空列表
func AssembleContext(matches []Match) (string, []Source) {
	var b strings.Builder
	var sources []Source

	for _, match := range matches {
		if match.Score <= ScoreThreshold {
			continue
		}

		md := match.Metadata
		fmt.Fprintf(&b, "\n\nFrom %s (Page %d):\n%s", md.Filename, md.Page, md.Text)

		source := Source{Filename: md.Filename, Page: md.Page}
		if !containsSource(sources, source) {
			sources = append(sources, source)
		}
	}

	return b.String(), sources
}

// Texts 返回全部检索结果的原文，不做阈值过滤
// 阈值只约束展示给用户的引用来源，喂给生成模型的上下文包含所有召回chunk
func Texts(matches []Match) []string {
	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match.Metadata.Text)
	}
	return texts
}

func containsSource(sources []Source, source Source) bool {
	for _, s := range sources {
		if s == source {
			return true
		}
	}
	return false
}
