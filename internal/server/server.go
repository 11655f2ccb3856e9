// internal/server/server.go
package server

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EmmanuelSan01/SportBot/internal/agent"
	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/observability"
	"github.com/EmmanuelSan01/SportBot/internal/models"
	"github.com/EmmanuelSan01/SportBot/internal/store"
	"github.com/EmmanuelSan01/SportBot/internal/vectorstore"
)

// ChatResponder produces the bot reply for an API chat message.
type ChatResponder interface {
	Process(ctx context.Context, message string, user *agent.UserInfo) *agent.Reply
}

// SyncService drives the catalog to vector index synchronization.
type SyncService interface {
	SyncAll(ctx context.Context) *models.SyncReport
	SyncIncremental(ctx context.Context, since time.Time) *models.SyncReport
	Status(ctx context.Context) (*models.CollectionStatus, error)
	Clear(ctx context.Context) error
}

// WebhookProcessor handles inbound Telegram updates.
type WebhookProcessor interface {
	HandleUpdate(ctx context.Context, update *models.TelegramUpdate)
}

// Pinger reports backend reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// VectorInfo reports vector collection state for health checks.
type VectorInfo interface {
	CollectionInfo(ctx context.Context) (*vectorstore.Info, error)
}

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Orchestrator ChatResponder
	Pipeline     SyncService
	Webhook      WebhookProcessor

	Productos   *store.ProductoStore
	Categorias  *store.CategoriaStore
	Promociones *store.PromocionStore
	Usuarios    *store.UsuarioStore
	Chats       *store.ChatStore

	DB     Pinger
	Cache  Pinger
	Vector VectorInfo

	Observability *observability.Observability
}

// Server is the HTTP surface of the bot: chat API, catalog CRUD, ingest
// administration, Telegram webhook and health.
type Server struct {
	cfg        config.ServerConfig
	app        config.AppConfig
	openai     config.OpenAIConfig
	retrieval  config.RetrievalConfig
	deps       Deps
	logger     logger.Logger
	httpServer *http.Server
}

func New(cfg config.Config, deps Deps, log logger.Logger) *Server {
	s := &Server{
		cfg:       cfg.Server,
		app:       cfg.App,
		openai:    cfg.OpenAI,
		retrieval: cfg.Retrieval,
		deps:      deps,
		logger:    log.WithFields(map[string]interface{}{"component": "server"}),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.middleware(s.Router()),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}
	return s
}

// Router builds the route table. Exposed for handler tests.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/v1/chats/message", s.handleChatMessage)
	mux.HandleFunc("GET /api/v1/chat/info", s.handleChatInfo)
	mux.HandleFunc("GET /api/v1/assistant", s.handleAssistantInfo)

	// pprof registers itself on the default mux.
	mux.Handle("GET /debug/pprof/", http.DefaultServeMux)

	mux.HandleFunc("POST /api/v1/ingest/sync", s.handleIngestSync)
	mux.HandleFunc("POST /api/v1/ingest/sync/incremental", s.handleIngestSyncIncremental)
	mux.HandleFunc("GET /api/v1/ingest/status", s.handleIngestStatus)
	mux.HandleFunc("DELETE /api/v1/ingest/clear", s.handleIngestClear)

	mux.HandleFunc("GET /api/v1/productos", s.handleProductoList)
	mux.HandleFunc("POST /api/v1/productos", s.handleProductoCreate)
	mux.HandleFunc("GET /api/v1/productos/{id}", s.handleProductoGet)
	mux.HandleFunc("PUT /api/v1/productos/{id}", s.handleProductoUpdate)
	mux.HandleFunc("DELETE /api/v1/productos/{id}", s.handleProductoDelete)
	mux.HandleFunc("GET /api/v1/productos/categoria/{categoriaID}", s.handleProductosByCategoria)

	mux.HandleFunc("GET /api/v1/categorias", s.handleCategoriaList)
	mux.HandleFunc("POST /api/v1/categorias", s.handleCategoriaCreate)
	mux.HandleFunc("GET /api/v1/categorias/{id}", s.handleCategoriaGet)
	mux.HandleFunc("PUT /api/v1/categorias/{id}", s.handleCategoriaUpdate)
	mux.HandleFunc("DELETE /api/v1/categorias/{id}", s.handleCategoriaDelete)

	mux.HandleFunc("GET /api/v1/promociones", s.handlePromocionList)
	mux.HandleFunc("POST /api/v1/promociones", s.handlePromocionCreate)
	mux.HandleFunc("GET /api/v1/promociones/{id}", s.handlePromocionGet)
	mux.HandleFunc("PUT /api/v1/promociones/{id}", s.handlePromocionUpdate)
	mux.HandleFunc("DELETE /api/v1/promociones/{id}", s.handlePromocionDelete)

	mux.HandleFunc("GET /api/v1/usuarios", s.handleUsuarioList)
	mux.HandleFunc("POST /api/v1/usuarios", s.handleUsuarioCreate)
	mux.HandleFunc("GET /api/v1/usuarios/{id}", s.handleUsuarioGet)
	mux.HandleFunc("PUT /api/v1/usuarios/{id}", s.handleUsuarioUpdate)
	mux.HandleFunc("DELETE /api/v1/usuarios/{id}", s.handleUsuarioDelete)

	mux.HandleFunc("POST /api/v1/chats", s.handleChatCreate)
	mux.HandleFunc("DELETE /api/v1/chats/{id}", s.handleChatDelete)
	mux.HandleFunc("GET /api/v1/admin/chats", s.handleChatList)
	mux.HandleFunc("GET /api/v1/admin/chats/{id}", s.handleChatGet)
	mux.HandleFunc("GET /api/v1/admin/chats/usuario/{usuarioID}", s.handleChatsByUsuario)

	mux.HandleFunc("POST /telegram/webhook", s.handleTelegramWebhook)
	mux.HandleFunc("GET /telegram/health", s.handleTelegramHealth)

	return mux
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(s.cfg.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Error("server shutdown failed", nil)
		}
	}()

	s.logger.Info("http server starting", map[string]interface{}{"addr": s.cfg.Addr()})
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.URL.Path
		if s.deps.Observability != nil {
			status := "success"
			if rec.status >= 400 {
				status = "error"
			}
			s.deps.Observability.RecordRequest(r.Context(), route, status)
			s.deps.Observability.RecordRequestDuration(r.Context(), route, elapsed)
		}
		s.logger.Debug("request handled", map[string]interface{}{
			"method":   r.Method,
			"path":     route,
			"status":   rec.status,
			"duration": elapsed.String(),
		})
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "SportBot Backend API with RAG",
		"version":  s.app.Version,
		"status":   "running",
		"features": []string{"CRUD Operations", "RAG Chat", "Data Synchronization"},
	})
}

func (s *Server) handleChatInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model":       s.openai.Model,
		"rag_enabled": s.openai.Configured(),
		"top_k":       s.retrieval.TopK,
		"tiers":       []string{agent.TierRAG, agent.TierFallback},
	})
}

func (s *Server) handleAssistantInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name": "BaekhoBot",
		"type": "commercial_assistant",
		"capabilities": []string{
			"product_recommendations",
			"customer_support",
			"promotion_lookup",
		},
	})
}
