package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelSan01/SportBot/internal/agent"
	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/models"
	"github.com/EmmanuelSan01/SportBot/internal/store"
	"github.com/EmmanuelSan01/SportBot/internal/vectorstore"
)

// ==========================
// Test Helper Functions
// ==========================

type stubOrchestrator struct {
	reply    *agent.Reply
	messages []string
}

func (s *stubOrchestrator) Process(_ context.Context, message string, _ *agent.UserInfo) *agent.Reply {
	s.messages = append(s.messages, message)
	return s.reply
}

type stubPipeline struct {
	report *models.SyncReport
	status *models.CollectionStatus
	err    error
	since  time.Time
}

func (s *stubPipeline) SyncAll(context.Context) *models.SyncReport { return s.report }
func (s *stubPipeline) SyncIncremental(_ context.Context, since time.Time) *models.SyncReport {
	s.since = since
	return s.report
}
func (s *stubPipeline) Status(context.Context) (*models.CollectionStatus, error) {
	return s.status, s.err
}
func (s *stubPipeline) Clear(context.Context) error { return s.err }

type stubWebhook struct {
	updates []*models.TelegramUpdate
}

func (s *stubWebhook) HandleUpdate(_ context.Context, update *models.TelegramUpdate) {
	s.updates = append(s.updates, update)
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping(context.Context) error { return s.err }

type stubVectorInfo struct {
	info *vectorstore.Info
	err  error
}

func (s *stubVectorInfo) CollectionInfo(context.Context) (*vectorstore.Info, error) {
	return s.info, s.err
}

type serverFixture struct {
	server       *Server
	mock         sqlmock.Sqlmock
	orchestrator *stubOrchestrator
	pipeline     *stubPipeline
	webhook      *stubWebhook
}

func newTestServer(t *testing.T) *serverFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newTestServerWithDB(t, db, mock)
}

func newTestServerWithDB(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) *serverFixture {
	t.Helper()
	orchestrator := &stubOrchestrator{
		reply: &agent.Reply{
			Text:    "🛍️ respuesta",
			Tier:    agent.TierFallback,
			Intent:  "greeting",
			Sources: []agent.Source{},
		},
	}
	pipeline := &stubPipeline{report: &models.SyncReport{Status: "success", SyncedCount: 4}}
	webhook := &stubWebhook{}

	cfg := config.Config{
		App:       config.AppConfig{Name: "sportbot", Version: "test"},
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: 1},
		OpenAI:    config.OpenAIConfig{Model: "gpt-4o-mini"},
		Retrieval: config.RetrievalConfig{TopK: 5},
	}
	deps := Deps{
		Orchestrator: orchestrator,
		Pipeline:     pipeline,
		Webhook:      webhook,
		Productos:    store.NewProductoStore(db),
		Categorias:   store.NewCategoriaStore(db),
		Promociones:  store.NewPromocionStore(db),
		Usuarios:     store.NewUsuarioStore(db),
		Chats:        store.NewChatStore(db),
	}
	return &serverFixture{
		server:       New(cfg, deps, logger.NewTestLogger(t)),
		mock:         mock,
		orchestrator: orchestrator,
		pipeline:     pipeline,
		webhook:      webhook,
	}
}

func (f *serverFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ==========================
// Chat API Tests
// ==========================

func TestServer_ChatMessage(t *testing.T) {
	f := newTestServer(t)
	now := time.Now()
	f.mock.ExpectQuery(`INSERT INTO chat (.+) ON CONFLICT \(usuario_id, chat_id\)`).
		WithArgs(int64(7), "chat-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "usuario_id", "chat_id", "ultimo_mensaje", "total_mensajes",
			"fecha_creacion", "actualizado_en",
		}).AddRow(1, 7, "chat-1", "Hola", 1, now, now))

	rec := f.do(http.MethodPost, "/api/v1/chats/message",
		`{"mensaje": "Hola", "usuario_id": 7, "chat_id": "chat-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "🛍️ respuesta", data["reply"])
	assert.Equal(t, "fallback", data["tier"])
	assert.Equal(t, "greeting", data["intent"])

	require.Len(t, f.orchestrator.messages, 1)
	assert.Equal(t, "Hola", f.orchestrator.messages[0])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestServer_ChatMessage_EmptyMessageRejected(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodPost, "/api/v1/chats/message",
		`{"mensaje": "", "usuario_id": 7, "chat_id": "chat-1"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, f.orchestrator.messages, "rejected payloads never reach the agent")
}

func TestServer_ChatMessage_MissingFieldsRejected(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodPost, "/api/v1/chats/message", `{"mensaje": "Hola"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, f.orchestrator.messages)
}

func TestServer_ChatMessage_RecordFailureStillReplies(t *testing.T) {
	f := newTestServer(t)
	f.mock.ExpectQuery(`INSERT INTO chat`).
		WillReturnError(errors.New("connection refused"))

	rec := f.do(http.MethodPost, "/api/v1/chats/message",
		`{"mensaje": "Hola", "usuario_id": 7, "chat_id": "chat-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.orchestrator.messages, 1)
}

// ==========================
// CRUD Tests
// ==========================

func TestServer_ProductoGet(t *testing.T) {
	f := newTestServer(t)
	now := time.Now()
	f.mock.ExpectQuery(`SELECT (.+) FROM producto p`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "categoria_id", "nombre", "descripcion", "precio",
			"disponible", "fecha_creacion", "actualizado_en", "nombre",
		}).AddRow(1, 2, "Dobok Premium", "Uniforme de competencia", 180000.0, true, now, now, "Doboks"))

	rec := f.do(http.MethodGet, "/api/v1/productos/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Dobok Premium", body["nombre"])
	assert.Equal(t, "Doboks", body["categoriaNombre"])
}

func TestServer_ProductoGet_NotFound(t *testing.T) {
	f := newTestServer(t)
	f.mock.ExpectQuery(`SELECT (.+) FROM producto p`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	rec := f.do(http.MethodGet, "/api/v1/productos/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ProductoGet_InvalidID(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodGet, "/api/v1/productos/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ProductoCreate(t *testing.T) {
	f := newTestServer(t)
	now := time.Now()
	f.mock.ExpectQuery(`INSERT INTO producto`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_creacion", "actualizado_en"}).
			AddRow(5, now, now))

	rec := f.do(http.MethodPost, "/api/v1/productos",
		`{"categoriaId": 2, "nombre": "Peto", "precio": 95000, "disponible": true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "Peto", body["nombre"])
}

func TestServer_ProductosByCategoria(t *testing.T) {
	f := newTestServer(t)
	now := time.Now()
	f.mock.ExpectQuery(`SELECT (.+) FROM producto p(.+)WHERE p\.categoria_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "categoria_id", "nombre", "descripcion", "precio",
			"disponible", "fecha_creacion", "actualizado_en", "nombre",
		}).AddRow(1, 2, "Dobok Premium", "", 180000.0, true, now, now, "Doboks"))

	rec := f.do(http.MethodGet, "/api/v1/productos/categoria/2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var productos []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &productos))
	require.Len(t, productos, 1)
	assert.Equal(t, "Dobok Premium", productos[0]["nombre"])
}

func TestServer_CategoriaDelete_NotFound(t *testing.T) {
	f := newTestServer(t)
	f.mock.ExpectExec(`DELETE FROM categoria`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := f.do(http.MethodDelete, "/api/v1/categorias/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Ingest Tests
// ==========================

func TestServer_IngestSync(t *testing.T) {
	f := newTestServer(t)
	f.pipeline.report = &models.SyncReport{
		Status:      "success",
		SyncedCount: 4,
		PerTypeCounts: map[string]int{
			"producto": 2, "categoria": 1, "promocion": 1,
		},
	}

	rec := f.do(http.MethodPost, "/api/v1/ingest/sync", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(4), body["synced_count"])
}

func TestServer_IngestSync_CollectionUnreachable(t *testing.T) {
	f := newTestServer(t)
	f.pipeline.report = &models.SyncReport{Status: "error", Message: "vector collection unreachable"}

	rec := f.do(http.MethodPost, "/api/v1/ingest/sync", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_IngestSyncIncremental_Window(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodPost, "/api/v1/ingest/sync/incremental?hours_back=6", "")

	require.Equal(t, http.StatusOK, rec.Code)
	expected := time.Now().Add(-6 * time.Hour)
	assert.WithinDuration(t, expected, f.pipeline.since, time.Minute)
}

func TestServer_IngestSyncIncremental_InvalidHoursBack(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodPost, "/api/v1/ingest/sync/incremental?hours_back=-1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_IngestStatus_Unavailable(t *testing.T) {
	f := newTestServer(t)
	f.pipeline.err = errors.New("SYNC_PIPELINE_UNAVAILABLE")

	rec := f.do(http.MethodGet, "/api/v1/ingest/status", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// ==========================
// Webhook Tests
// ==========================

func TestServer_TelegramWebhook(t *testing.T) {
	f := newTestServer(t)
	now := time.Now()
	f.mock.ExpectQuery(`INSERT INTO chat`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "usuario_id", "chat_id", "ultimo_mensaje", "total_mensajes",
			"fecha_creacion", "actualizado_en",
		}).AddRow(1, 7, "42", "hola", 1, now, now))

	rec := f.do(http.MethodPost, "/telegram/webhook",
		`{"update_id": 10, "message": {"message_id": 1, "from": {"id": 7, "first_name": "Laura"}, "chat": {"id": 42}, "text": "hola"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])

	require.Len(t, f.webhook.updates, 1)
	assert.Equal(t, int64(10), f.webhook.updates[0].UpdateID)
}

func TestServer_TelegramWebhook_MissingUpdateID(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodPost, "/telegram/webhook", `{"message": {"message_id": 1}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.webhook.updates)
}

func TestServer_TelegramWebhook_MalformedBody(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodPost, "/telegram/webhook", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Health Tests
// ==========================

func TestServer_Health(t *testing.T) {
	f := newTestServer(t)
	f.server.deps.DB = &stubPinger{}
	f.server.deps.Cache = &stubPinger{}
	f.server.deps.Vector = &stubVectorInfo{info: &vectorstore.Info{Exists: true, Count: 4}}

	rec := f.do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])

	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "ok", deps["postgres"])
	assert.Equal(t, "ok", deps["redis"])
	assert.Equal(t, "ok", deps["qdrant"])
}

func TestServer_Health_DegradedOnDependencyFailure(t *testing.T) {
	f := newTestServer(t)
	f.server.deps.DB = &stubPinger{err: errors.New("connection refused")}
	f.server.deps.Cache = &stubPinger{}

	rec := f.do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
}

func TestServer_ChatInfo(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodGet, "/api/v1/chat/info", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Equal(t, false, body["rag_enabled"], "no API key configured in tests")
	assert.Equal(t, float64(5), body["top_k"])
}

func TestServer_Root(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "running", body["status"])
}
