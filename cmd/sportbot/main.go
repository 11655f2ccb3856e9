// cmd/sportbot/main.go
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/EmmanuelSan01/SportBot/internal/agent"
	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/database"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/observability"
	"github.com/EmmanuelSan01/SportBot/internal/embedding"
	"github.com/EmmanuelSan01/SportBot/internal/server"
	"github.com/EmmanuelSan01/SportBot/internal/session"
	"github.com/EmmanuelSan01/SportBot/internal/store"
	"github.com/EmmanuelSan01/SportBot/internal/sync"
	"github.com/EmmanuelSan01/SportBot/internal/telegram"
	"github.com/EmmanuelSan01/SportBot/internal/vectorstore"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting SportBot backend...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Stores ---
	db := pg.GetDB()
	productos := store.NewProductoStore(db)
	categorias := store.NewCategoriaStore(db)
	promociones := store.NewPromocionStore(db)
	usuarios := store.NewUsuarioStore(db)
	chats := store.NewChatStore(db)

	// --- Retrieval stack ---
	// The embedding provider shares the OpenAI key with the chat client.
	// Without a key the bot still runs: ingest refuses and the RAG tier
	// reports unavailable, so every message falls back to templates.
	var embedder *embedding.Provider
	if cfg.OpenAI.Configured() {
		embedder, err = embedding.NewProvider(cfg.Embedding, cfg.OpenAI.APIKey, log)
		if err != nil {
			zapLog.Fatal("embedding provider init failed", zap.Error(err))
		}
	} else {
		zapLog.Warn("no OpenAI API key configured, running in rule-based-only mode")
	}

	index := vectorstore.NewIndex(cfg.Qdrant, cfg.Embedding.Dimension, log)
	if err := index.EnsureCollection(ctx); err != nil {
		// Startup survives an unreachable vector store: ingest and RAG
		// degrade, CRUD and the fallback tier keep working.
		zapLog.Warn("vector collection initialization failed", zap.Error(err))
	} else {
		zapLog.Info("vector collection ready", zap.String("collection", cfg.Qdrant.Collection))
	}

	var pipelineEmbedder sync.Embedder
	if embedder != nil {
		pipelineEmbedder = embedder
	}
	pipeline := sync.NewPipeline(productos, categorias, promociones, pipelineEmbedder, index, log)

	// --- Conversational agent ---
	static := agent.NewStaticResponder(cfg.OpenAI, log)
	rag := agent.NewRAGResponder(
		cfg.OpenAI, cfg.Retrieval,
		embedder, index,
		redis.Client, time.Duration(cfg.Database.Redis.CacheTTL)*time.Second,
		log,
	)
	orchestrator := agent.NewOrchestrator(rag, static, log)

	// --- Sessions ---
	sessions := session.NewStore(cfg.Session.IdleTimeout(), log)
	go sessions.Run(ctx, cfg.Session.SweepInterval())

	// --- Telegram ---
	tgClient := telegram.NewClient(cfg.Telegram, log)
	webhook := telegram.NewProcessor(sessions, orchestrator, tgClient, chats, log)

	// --- HTTP server ---
	srv := server.New(*cfg, server.Deps{
		Orchestrator:  orchestrator,
		Pipeline:      pipeline,
		Webhook:       webhook,
		Productos:     productos,
		Categorias:    categorias,
		Promociones:   promociones,
		Usuarios:      usuarios,
		Chats:         chats,
		DB:            pg,
		Cache:         redis,
		Vector:        index,
		Observability: obs,
	}, log)

	if err := srv.Start(ctx); err != nil {
		zapLog.Fatal("http server failed", zap.Error(err))
	}
	zapLog.Info("SportBot backend stopped")
}
