package controller

import (
	"bytes"
	"chatbot-backend/model"
	"chatbot-backend/service/retrieval"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIngestor struct {
	docID       string
	totalChunks int
	ingestErr   error
	ingestCalls int

	deleteFound bool
	deleteErr   error
}

func (f *fakeIngestor) Ingest(ctx context.Context, file io.Reader, filename string) (string, int, error) {
	f.ingestCalls++
	if f.ingestErr != nil {
		return "", 0, f.ingestErr
	}
	return f.docID, f.totalChunks, nil
}

func (f *fakeIngestor) Delete(ctx context.Context, docID string) (bool, error) {
	return f.deleteFound, f.deleteErr
}

type fakeChatService struct {
	answer  string
	sources []retrieval.Source
	err     error

	gotSessionID string
	gotQuestion  string
}

func (f *fakeChatService) Ask(ctx context.Context, sessionID, question string) (string, []retrieval.Source, error) {
	f.gotSessionID = sessionID
	f.gotQuestion = question
	return f.answer, f.sources, f.err
}

type fakeDatastore struct {
	messages   []model.ChatMessage
	historyErr error

	documents []model.DocumentMetadata

	feedback      []model.Feedback
	createFbErr   error
	createFbCalls int
}

func (f *fakeDatastore) History(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	return f.messages, f.historyErr
}

func (f *fakeDatastore) ListDocuments(ctx context.Context) ([]model.DocumentMetadata, error) {
	return f.documents, nil
}

func (f *fakeDatastore) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	f.createFbCalls++
	if f.createFbErr != nil {
		return f.createFbErr
	}
	f.feedback = append(f.feedback, *feedback)
	return nil
}

func (f *fakeDatastore) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	return f.feedback, nil
}

func newTestRouter(ctl *Controller) *gin.Engine {
	r := gin.New()
	r.POST("/upload", ctl.UploadDocument)
	r.GET("/documents", ctl.ListDocuments)
	r.DELETE("/documents/:id", ctl.DeleteDocument)
	r.POST("/chat", ctl.Chat)
	r.GET("/history/:session_id", ctl.GetHistory)
	r.POST("/feedback", ctl.SubmitFeedback)
	r.GET("/feedback", ctl.ListFeedback)
	r.GET("/health", ctl.Health)
	return r
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	ingestor := &fakeIngestor{docID: "doc-1", totalChunks: 3}
	ctl := New(ingestor, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	body, contentType := multipartUpload(t, "manual.txt", "First sentence. Second sentence.")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		DocID       string `json:"doc_id"`
		Filename    string `json:"filename"`
		TotalChunks int    `json:"total_chunks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "doc-1", resp.DocID)
	assert.Equal(t, "manual.txt", resp.Filename)
	assert.Equal(t, 3, resp.TotalChunks)
	assert.Equal(t, 1, ingestor.ingestCalls)
}

func TestUploadDocumentUnsupportedExtension(t *testing.T) {
	ingestor := &fakeIngestor{}
	ctl := New(ingestor, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	body, contentType := multipartUpload(t, "malware.exe", "binary")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrUnsupportedFileType.Error())
	assert.Zero(t, ingestor.ingestCalls)
}

func TestUploadDocumentMissingFile(t *testing.T) {
	ctl := New(&fakeIngestor{}, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDocumentIngestFailure(t *testing.T) {
	ingestor := &fakeIngestor{ingestErr: errors.New("extraction failed")}
	ctl := New(ingestor, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	body, contentType := multipartUpload(t, "manual.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrProcessDocument.Error())
}

func TestDeleteDocument(t *testing.T) {
	ctl := New(&fakeIngestor{deleteFound: true}, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodDelete, "/documents/doc-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doc_id":"doc-1"`)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	ctl := New(&fakeIngestor{deleteFound: false}, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodDelete, "/documents/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrDocumentNotFound.Error())
}

func TestChat(t *testing.T) {
	chatService := &fakeChatService{
		answer: "The warranty covers two years.",
		sources: []retrieval.Source{
			{Filename: "manual.pdf", Page: 2},
		},
	}
	ctl := New(&fakeIngestor{}, chatService, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	payload := `{"question": "How long is the warranty?", "session_id": "session-1"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Answer  string `json:"answer"`
		Sources []struct {
			Filename string `json:"filename"`
			Page     int64  `json:"page"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The warranty covers two years.", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "manual.pdf", resp.Sources[0].Filename)
	assert.Equal(t, int64(2), resp.Sources[0].Page)

	assert.Equal(t, "session-1", chatService.gotSessionID)
	assert.Equal(t, "How long is the warranty?", chatService.gotQuestion)
}

func TestChatMissingFields(t *testing.T) {
	ctl := New(&fakeIngestor{}, &fakeChatService{}, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatServiceFailure(t *testing.T) {
	chatService := &fakeChatService{err: errors.New("generation failed")}
	ctl := New(&fakeIngestor{}, chatService, &fakeDatastore{}, nil)
	r := newTestRouter(ctl)

	payload := `{"question": "hi", "session_id": "session-1"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrChat.Error())
}

func TestGetHistory(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	store := &fakeDatastore{
		messages: []model.ChatMessage{
			{SessionID: "session-1", Role: model.RoleUser, Message: "hi", CreatedAt: created},
			{SessionID: "session-1", Role: model.RoleAssistant, Message: "hello", CreatedAt: created.Add(time.Second)},
		},
	}
	ctl := New(&fakeIngestor{}, &fakeChatService{}, store, nil)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodGet, "/history/session-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []struct {
			Role      string `json:"role"`
			Message   string `json:"message"`
			Timestamp string `json:"timestamp"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.History, 2)
	assert.Equal(t, model.RoleUser, resp.History[0].Role)
	assert.Equal(t, "2025-03-01T10:30:00Z", resp.History[0].Timestamp)
	assert.Equal(t, model.RoleAssistant, resp.History[1].Role)
}

func TestSubmitFeedback(t *testing.T) {
	store := &fakeDatastore{}
	ctl := New(&fakeIngestor{}, &fakeChatService{}, store, nil)
	r := newTestRouter(ctl)

	payload := `{"session_id": "session-1", "question": "q", "answer": "a", "rating": 4, "comments": "helpful"}`
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.feedback, 1)
	assert.Equal(t, 4, store.feedback[0].Rating)
	assert.NotEmpty(t, store.feedback[0].FeedbackID)
	assert.Contains(t, w.Body.String(), "feedback_id")
}

func TestSubmitFeedbackInvalidRating(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		store := &fakeDatastore{}
		ctl := New(&fakeIngestor{}, &fakeChatService{}, store, nil)
		r := newTestRouter(ctl)

		payload := `{"session_id": "session-1", "question": "q", "answer": "a", "rating": ` + strconv.Itoa(rating) + `}`
		req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
		assert.Contains(t, w.Body.String(), ErrInvalidRating.Error(), "rating %d", rating)
		assert.Zero(t, store.createFbCalls, "rating %d", rating)
	}
}

func TestHealthAllHealthy(t *testing.T) {
	checks := []HealthCheck{
		{Name: "mysql", Probe: func(ctx context.Context) error { return nil }},
		{Name: "milvus", Probe: func(ctx context.Context) error { return nil }},
	}
	ctl := New(&fakeIngestor{}, &fakeChatService{}, &fakeDatastore{}, checks)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Services["mysql"])
	assert.Equal(t, "healthy", resp.Services["milvus"])
}

func TestHealthDegraded(t *testing.T) {
	checks := []HealthCheck{
		{Name: "mysql", Probe: func(ctx context.Context) error { return nil }},
		{Name: "milvus", Probe: func(ctx context.Context) error { return errors.New("connection refused") }},
	}
	ctl := New(&fakeIngestor{}, &fakeChatService{}, &fakeDatastore{}, checks)
	r := newTestRouter(ctl)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "healthy", resp.Services["mysql"])
	assert.Equal(t, "unhealthy", resp.Services["milvus"])
}
