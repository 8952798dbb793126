package ingest

import (
	"chatbot-backend/model"
	"chatbot-backend/service/embedding"
	"chatbot-backend/vectorstore"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
)

const upsertAttempts = 3

// Extractor 文本抽取入口，extract.Registry满足该接口
type Extractor interface {
	Extract(ctx context.Context, fileType model.FileType, path string) ([]string, error)
}

// Embedder 向量化入口，embedding.Gateway满足该接口
type Embedder interface {
	Embed(ctx context.Context, text string) embedding.Result
}

// VectorStore 向量库入口，vectorstore.Client满足该接口
type VectorStore interface {
	Upsert(ctx context.Context, records []vectorstore.Record) error
	DeleteByDocID(ctx context.Context, docID string) error
}

// MetadataStore 文档元数据存储，dao.Store满足该接口
type MetadataStore interface {
	CreateDocument(ctx context.Context, doc *model.DocumentMetadata) error
	DeleteDocument(ctx context.Context, docID string) (bool, error)
}

// Ingestor 文档入库编排：抽取、切分、逐chunk向量化、批量写入向量库、落元数据
type Ingestor struct {
	extractor Extractor
	embedder  Embedder
	vectors   VectorStore
	documents MetadataStore
	chunkSize int
	overlap   int
}

func NewIngestor(extractor Extractor, embedder Embedder, vectors VectorStore, documents MetadataStore, chunkSize, overlap int) *Ingestor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	return &Ingestor{
		extractor: extractor,
		embedder:  embedder,
		vectors:   vectors,
		documents: documents,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Ingest 处理一个上传文件，返回生成的doc_id和chunk数
// 向量写入成功后元数据落库失败时，已写入的向量不回滚
func (ing *Ingestor) Ingest(ctx context.Context, file io.Reader, filename string) (string, int, error) {
	docID := uuid.New().String()

	// 上传内容写入临时文件供抽取器读取，所有退出路径都清理
	tmp, err := os.CreateTemp("", "chatbot-upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %v", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	fileSize, err := io.Copy(tmp, file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to write temp file: %v", err)
	}

	fileType := model.FileType(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))

	elements, err := ing.extractor.Extract(ctx, fileType, tmp.Name())
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text from %s: %v", filename, err)
	}
	text := strings.Join(elements, "\n\n")

	chunks := Chunk(text, ing.chunkSize, ing.overlap)

	slog.Debug("chunked document",
		"doc_id", docID,
		"filename", filename,
		"chunks", len(chunks),
	)

	records := make([]vectorstore.Record, 0, len(chunks))
	for i, chunk := range chunks {
		result := ing.embedder.Embed(ctx, chunk)
		if result.Degraded {
			slog.Warn("chunk embedding degraded to zero vector",
				"doc_id", docID,
				"chunk_id", i,
			)
		}

		records = append(records, vectorstore.Record{
			ID:       fmt.Sprintf("%s_%d", docID, i),
			Vector:   result.Vector,
			DocID:    docID,
			Filename: filename,
			ChunkID:  int64(i),
			Page:     int64(i/5 + 1), // 近似页码，每5个chunk算一页
			Text:     chunk,
		})
	}

	if len(records) > 0 {
		err = retry.Do(
			func() error {
				return ing.vectors.Upsert(ctx, records)
			},
			retry.Attempts(upsertAttempts),
			retry.DelayType(retry.BackOffDelay),
			retry.OnRetry(func(n uint, err error) {
				slog.Warn("retrying vector upsert",
					"attempt", n+1,
					"doc_id", docID,
					"err", err,
				)
			}),
		)
		if err != nil {
			return "", 0, fmt.Errorf("failed to upsert vectors for %s: %v", filename, err)
		}
	}

	doc := &model.DocumentMetadata{
		DocID:       docID,
		Filename:    filename,
		FileType:    fileType,
		FileSize:    fileSize,
		TotalChunks: len(chunks),
	}
	if err := ing.documents.CreateDocument(ctx, doc); err != nil {
		return "", 0, fmt.Errorf("failed to store document metadata for %s: %v", filename, err)
	}

	return docID, len(chunks), nil
}

// Delete 删除文档的全部向量和元数据，返回元数据记录是否存在
// 向量按doc_id过滤无条件删除，保证元数据落库失败遗留的孤儿向量也能清理掉
func (ing *Ingestor) Delete(ctx context.Context, docID string) (bool, error) {
	if err := ing.vectors.DeleteByDocID(ctx, docID); err != nil {
		return false, fmt.Errorf("failed to delete vectors for doc %s: %v", docID, err)
	}
	return ing.documents.DeleteDocument(ctx, docID)
}
