package model

import "time"

type FileType string

const (
	FileTypePDF      FileType = "pdf"
	FileTypeMarkdown FileType = "md"
	FileTypeText     FileType = "txt"
)

// DocumentMetadata 存储文档元数据
// 文档入库后元数据不再更新，删除文档时连同向量一起删除
type DocumentMetadata struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	DocID     string    `gorm:"not null;uniqueIndex" json:"doc_id"`
	Filename  string    `gorm:"not null" json:"filename"`
	FileType  FileType  `gorm:"not null" json:"file_type"`
	FileSize  int64     `gorm:"not null" json:"file_size"`

	// 文档切分后的chunk总数，chunk编号从0到TotalChunks-1连续
	TotalChunks int `gorm:"not null" json:"total_chunks"`
}

func (DocumentMetadata) TableName() string {
	return "document_metadata"
}
