package main

import (
	"chatbot-backend/config"
	"chatbot-backend/controller"
	"chatbot-backend/dao"
	"chatbot-backend/router"
	"chatbot-backend/service/chat"
	"chatbot-backend/service/embedding"
	"chatbot-backend/service/ingest"
	"chatbot-backend/service/ingest/extract"
	"chatbot-backend/service/retrieval"
	"chatbot-backend/vectorstore"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	if err := config.Load(config.DefaultPath); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dao.Open(config.Cfg.MySQL.DSN)
	if err != nil {
		slog.Error("Failed to connect to mysql", "err", err)
		os.Exit(1)
	}
	store := dao.NewStore(db)
	defer store.Close()

	vectors, err := vectorstore.New(ctx, vectorstore.Config{
		Endpoint:   config.Cfg.Milvus.Endpoint,
		APIKey:     config.Cfg.Milvus.APIKey,
		Collection: config.Cfg.Milvus.Collection,
	})
	if err != nil {
		slog.Error("Failed to connect to milvus", "err", err)
		os.Exit(1)
	}
	defer vectors.Close(context.Background())

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(config.Cfg.Gemini.APIKey),
		googleai.WithDefaultModel(config.Cfg.Gemini.Model),
		googleai.WithDefaultEmbeddingModel(config.Cfg.Gemini.EmbeddingModel),
	)
	if err != nil {
		slog.Error("Failed to create gemini client", "err", err)
		os.Exit(1)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		slog.Error("Failed to create embedder", "err", err)
		os.Exit(1)
	}

	gateway := embedding.NewGateway(embedder)
	generator := chat.NewGenerator(llm)

	ingestor := ingest.NewIngestor(
		extract.DefaultRegistry(),
		gateway,
		vectors,
		store,
		config.Cfg.Chunking.Size,
		config.Cfg.Chunking.Overlap,
	)

	chatService := chat.NewService(
		store,
		chat.NewWindow(store),
		gateway,
		retrieval.NewSearcher(vectors),
		generator,
		config.Cfg.Retrieval.TopK,
	)

	ctl := controller.New(ingestor, chatService, store, []controller.HealthCheck{
		{Name: "mysql", Probe: store.Ping},
		{Name: "milvus", Probe: vectors.Check},
		{Name: "gemini", Probe: generator.Check},
	})

	srv := &http.Server{
		Addr:    ":" + config.Cfg.Server.Port,
		Handler: router.Register(ctl),
	}

	go func() {
		slog.Info("server listening", "port", config.Cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown server gracefully", "err", err)
	}
}
