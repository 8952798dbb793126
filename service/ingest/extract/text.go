package extract

import (
	"chatbot-backend/model"
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/documentloaders"
)

// TextExtractor 纯文本抽取器，兼容Markdown
type TextExtractor struct{}

var _ Extractor = &TextExtractor{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) CanProcess(fileType model.FileType) bool {
	return fileType == model.FileTypeText || fileType == model.FileTypeMarkdown
}

func (e *TextExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	docs, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load text: %v", err)
	}

	elements := make([]string, 0, len(docs))
	for _, doc := range docs {
		elements = append(elements, doc.PageContent)
	}
	return elements, nil
}
