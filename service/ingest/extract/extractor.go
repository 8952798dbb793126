package extract

import (
	"chatbot-backend/model"
	"context"
	"fmt"
)

// Extractor 文本抽取器，从落盘的上传文件中抽取文本元素
type Extractor interface {
	// 判断是否支持传入的文件类型
	CanProcess(fileType model.FileType) bool

	// 抽取文本元素
	Extract(ctx context.Context, path string) ([]string, error)
}

// Registry 抽取器注册表，按文件类型查找
type Registry struct {
	extractors []Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// DefaultRegistry 支持的全部文件类型：txt、md、pdf
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewTextExtractor(),
		NewPDFExtractor(),
	)
}

func (r *Registry) Extract(ctx context.Context, fileType model.FileType, path string) ([]string, error) {
	for _, extractor := range r.extractors {
		if extractor.CanProcess(fileType) {
			return extractor.Extract(ctx, path)
		}
	}
	return nil, fmt.Errorf("no extractor found for file type: %s", fileType)
}
