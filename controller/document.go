package controller

import (
	"chatbot-backend/response"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var allowedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

// UploadDocument 接收上传文件并同步入库，返回doc_id和chunk总数
// 扩展名校验在任何处理开始前执行
func (ctl *Controller) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		slog.Info("rejected upload with unsupported extension", "filename", fileHeader.Filename)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrUnsupportedFileType.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error(ErrProcessDocument.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrProcessDocument.Error(),
		})
		return
	}
	defer file.Close()

	docID, totalChunks, err := ctl.ingestor.Ingest(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		slog.Error(ErrProcessDocument.Error(), "filename", fileHeader.Filename, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrProcessDocument.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.UploadResponse{
		DocID:       docID,
		Filename:    fileHeader.Filename,
		TotalChunks: totalChunks,
		Message:     "Document processed successfully",
	})
}

func (ctl *Controller) ListDocuments(c *gin.Context) {
	docs, err := ctl.store.ListDocuments(c.Request.Context())
	if err != nil {
		slog.Error(ErrListDocuments.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrListDocuments.Error(),
		})
		return
	}

	var resp response.ListDocumentsResponse
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, response.DocumentResponse{
			DocID:       doc.DocID,
			Filename:    doc.Filename,
			FileType:    string(doc.FileType),
			FileSize:    doc.FileSize,
			TotalChunks: doc.TotalChunks,
			UploadedAt:  doc.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (ctl *Controller) DeleteDocument(c *gin.Context) {
	docID := c.Param("id")

	found, err := ctl.ingestor.Delete(c.Request.Context(), docID)
	if err != nil {
		slog.Error(ErrDeleteDocument.Error(), "doc_id", docID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteDocument.Error(),
		})
		return
	}

	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrDocumentNotFound.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.DeleteDocumentResponse{
		DocID:   docID,
		Message: "Document deleted successfully",
	})
}
