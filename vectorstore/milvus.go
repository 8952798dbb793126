package vectorstore

import (
	"chatbot-backend/service/retrieval"
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
)

// VectorDim 集合的向量维度，与嵌入模型保持一致
const VectorDim = 768

// Record 一条chunk向量记录，ID形如 {doc_id}_{chunk_index}
type Record struct {
	ID       string
	Vector   []float32
	DocID    string
	Filename string
	ChunkID  int64
	Page     int64
	Text     string
}

type Config struct {
	Endpoint   string
	APIKey     string
	Collection string
}

// Client Milvus向量库客户端
type Client struct {
	milvus     *milvusclient.Client
	collection string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	m, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address: cfg.Endpoint,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus client: %v", err)
	}

	return &Client{
		milvus:     m,
		collection: cfg.Collection,
	}, nil
}

// Upsert 批量写入chunk向量
func (c *Client) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, 0, len(records))
	vectors := make([][]float32, 0, len(records))
	docIDs := make([]string, 0, len(records))
	filenames := make([]string, 0, len(records))
	chunkIDs := make([]int64, 0, len(records))
	pages := make([]int64, 0, len(records))
	texts := make([]string, 0, len(records))

	for _, r := range records {
		ids = append(ids, r.ID)
		vectors = append(vectors, r.Vector)
		docIDs = append(docIDs, r.DocID)
		filenames = append(filenames, r.Filename)
		chunkIDs = append(chunkIDs, r.ChunkID)
		pages = append(pages, r.Page)
		texts = append(texts, r.Text)
	}

	columns := []column.Column{
		column.NewColumnVarChar("id", ids),
		column.NewColumnFloatVector("vector", VectorDim, vectors),
		column.NewColumnVarChar("text", texts),
		column.NewColumnVarChar("doc_id", docIDs),
		column.NewColumnVarChar("filename", filenames),
		column.NewColumnInt64("chunk_id", chunkIDs),
		column.NewColumnInt64("page", pages),
	}

	opt := milvusclient.NewColumnBasedInsertOption(c.collection).WithColumns(columns...)
	if _, err := c.milvus.Upsert(ctx, opt); err != nil {
		return fmt.Errorf("failed to upsert %d records: %v", len(records), err)
	}
	return nil
}

// Search 相似度检索，返回带元数据的匹配结果
func (c *Client) Search(ctx context.Context, vector []float32, topK int, expr string) ([]retrieval.Match, error) {
	opt := milvusclient.NewSearchOption(c.collection, topK, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField("vector").
		WithOutputFields("text", "doc_id", "filename", "chunk_id", "page")
	if expr != "" {
		opt = opt.WithFilter(expr)
	}

	resultSets, err := c.milvus.Search(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection %s: %v", c.collection, err)
	}

	var matches []retrieval.Match
	for _, rs := range resultSets {
		for i := 0; i < rs.ResultCount; i++ {
			id, err := rs.IDs.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("failed to read result id: %v", err)
			}

			matches = append(matches, retrieval.Match{
				ID:    id,
				Score: rs.Scores[i],
				Metadata: retrieval.Metadata{
					DocID:    getString(rs.GetColumn("doc_id"), i),
					Filename: getString(rs.GetColumn("filename"), i),
					ChunkID:  getInt64(rs.GetColumn("chunk_id"), i),
					Page:     getInt64(rs.GetColumn("page"), i),
					Text:     getString(rs.GetColumn("text"), i),
				},
			})
		}
	}
	return matches, nil
}

// DeleteByDocID 删除一个文档的全部chunk向量
func (c *Client) DeleteByDocID(ctx context.Context, docID string) error {
	expr := fmt.Sprintf(`doc_id == "%s"`, docID)
	opt := milvusclient.NewDeleteOption(c.collection).WithExpr(expr)
	if _, err := c.milvus.Delete(ctx, opt); err != nil {
		return fmt.Errorf("failed to delete vectors for doc %s: %v", docID, err)
	}
	return nil
}

// Check 健康检查，确认集合存在
func (c *Client) Check(ctx context.Context) error {
	has, err := c.milvus.HasCollection(ctx, milvusclient.NewHasCollectionOption(c.collection))
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("collection %s not found", c.collection)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.milvus.Close(ctx)
}

func getString(col column.Column, i int) string {
	if col == nil {
		return ""
	}
	v, err := col.GetAsString(i)
	if err != nil {
		return ""
	}
	return v
}

func getInt64(col column.Column, i int) int64 {
	if col == nil {
		return 0
	}
	v, err := col.GetAsInt64(i)
	if err != nil {
		return 0
	}
	return v
}
