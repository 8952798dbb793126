package ingest

import "strings"

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Chunk 将抽取出的文本切分为带重叠的chunk
// 按句子边界贪心累积，超过chunkSize时输出当前chunk，
// 并从尾部回取总长不超过overlap的句子作为下一个chunk的重叠部分。
// 单句超过chunkSize时独占一个chunk，不在句子中间切断。
func Chunk(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	size := 0

	for _, sentence := range sentences {
		if size+len(sentence) <= chunkSize {
			current = append(current, sentence)
			size += len(sentence)
			continue
		}

		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}

		current = append(overlapTail(current, overlap), sentence)
		size = 0
		for _, s := range current {
			size += len(s)
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitSentences 简单的句子切分：换行归一为空格，按". "切分并补回句号
func splitSentences(text string) []string {
	normalized := strings.ReplaceAll(text, "\n", " ")
	parts := strings.Split(normalized, ". ")

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sentences = append(sentences, part+".")
	}
	return sentences
}

// overlapTail 从尾部向前取句子，累计长度不超过overlap
func overlapTail(sentences []string, overlap int) []string {
	var carry []string
	size := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		s := sentences[i]
		if size+len(s) > overlap {
			break
		}
		carry = append([]string{s}, carry...)
		size += len(s)
	}
	return carry
}
