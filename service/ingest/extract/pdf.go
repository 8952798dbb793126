package extract

import (
	"chatbot-backend/model"
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/documentloaders"
)

// PDFExtractor PDF抽取器，按页抽取文本元素
type PDFExtractor struct{}

var _ Extractor = &PDFExtractor{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) CanProcess(fileType model.FileType) bool {
	return fileType == model.FileTypePDF
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %v", err)
	}

	docs, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pdf: %v", err)
	}

	elements := make([]string, 0, len(docs))
	for _, doc := range docs {
		elements = append(elements, doc.PageContent)
	}
	return elements, nil
}
