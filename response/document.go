package response

import "time"

type UploadResponse struct {
	DocID       string `json:"doc_id"`
	Filename    string `json:"filename"`
	TotalChunks int    `json:"total_chunks"`
	Message     string `json:"message"`
}

type DocumentResponse struct {
	DocID       string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	TotalChunks int       `json:"total_chunks"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type DeleteDocumentResponse struct {
	DocID   string `json:"doc_id"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
