package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/models"
	"github.com/EmmanuelSan01/SportBot/internal/vectorstore"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeProductos struct {
	rows  []*models.Producto
	since time.Time
	err   error
}

func (f *fakeProductos) ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Producto, error) {
	f.since = since
	return f.rows, f.err
}

type fakeCategorias struct{ rows []*models.Categoria }

func (f *fakeCategorias) ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Categoria, error) {
	return f.rows, nil
}

type fakePromos struct{ rows []*models.Promocion }

func (f *fakePromos) ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Promocion, error) {
	return f.rows, nil
}

type fakeEmbedder struct{ dimension int }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) []float32 {
	return make([]float32, f.dimension)
}

type fakeIndex struct {
	ensureErr  error
	upserted   []vectorstore.Document
	failDocIDs map[string]bool
	cleared    bool
	info       *vectorstore.Info
}

func (f *fakeIndex) EnsureCollection(ctx context.Context) error { return f.ensureErr }

func (f *fakeIndex) Upsert(ctx context.Context, docs ...vectorstore.Document) error {
	for _, d := range docs {
		if f.failDocIDs[d.DocID] {
			return errors.New("write timeout")
		}
		f.upserted = append(f.upserted, d)
	}
	return nil
}

func (f *fakeIndex) Clear(ctx context.Context) error {
	f.cleared = true
	return nil
}

func (f *fakeIndex) CollectionInfo(ctx context.Context) (*vectorstore.Info, error) {
	if f.info == nil {
		return nil, errors.New("unreachable")
	}
	return f.info, nil
}

func testCatalog() (*fakeProductos, *fakeCategorias, *fakePromos) {
	productos := &fakeProductos{rows: []*models.Producto{
		{ID: 1, Nombre: "Dobok Premium", Descripcion: "Uniforme de competencia", CategoriaNombre: "Doboks", Precio: 180000, Disponible: true},
		{ID: 2, Nombre: "Dobok Básico", CategoriaNombre: "Doboks", Precio: 100000, Disponible: true},
	}}
	categorias := &fakeCategorias{rows: []*models.Categoria{
		{ID: 1, Nombre: "Doboks", Descripcion: "Uniformes de taekwondo"},
	}}
	promos := &fakePromos{rows: []*models.Promocion{
		{ID: 1, Titulo: "Descuento principiantes", Descuento: 15, ProductoNombre: "Dobok Básico", Activa: true},
	}}
	return productos, categorias, promos
}

func newTestPipeline(t *testing.T, idx *fakeIndex) (*Pipeline, *fakeProductos) {
	t.Helper()
	productos, categorias, promos := testCatalog()
	p := NewPipeline(productos, categorias, promos, &fakeEmbedder{dimension: 384}, idx, logger.NewTestLogger(t))
	return p, productos
}

// ==========================
// Core Functionality Tests
// ==========================

func TestPipeline_SyncAll(t *testing.T) {
	idx := &fakeIndex{}
	p, _ := newTestPipeline(t, idx)

	report := p.SyncAll(context.Background())

	assert.Equal(t, "success", report.Status)
	assert.Equal(t, 4, report.SyncedCount)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 2, report.PerTypeCounts["producto"])
	assert.Equal(t, 1, report.PerTypeCounts["categoria"])
	assert.Equal(t, 1, report.PerTypeCounts["promocion"])

	// Every document carries a vector of the configured dimension.
	for _, doc := range idx.upserted {
		assert.Len(t, doc.Vector, 384)
	}
}

func TestPipeline_SyncAll_RendersContent(t *testing.T) {
	idx := &fakeIndex{}
	p, _ := newTestPipeline(t, idx)

	p.SyncAll(context.Background())

	byID := map[string]vectorstore.Document{}
	for _, doc := range idx.upserted {
		byID[doc.DocID] = doc
	}

	assert.Equal(t,
		"Producto: Dobok Premium | Descripción: Uniforme de competencia | Categoría: Doboks | Precio: $180000 | Disponible: Sí",
		byID["producto_1"].Content)
	// Empty description is omitted entirely, label included.
	assert.Equal(t,
		"Producto: Dobok Básico | Categoría: Doboks | Precio: $100000 | Disponible: Sí",
		byID["producto_2"].Content)
	assert.Equal(t,
		"Categoría: Doboks | Descripción: Uniformes de taekwondo",
		byID["categoria_1"].Content)
	assert.Equal(t,
		"Promoción: Descuento principiantes | Descuento: 15% | Producto: Dobok Básico | Estado: Activa",
		byID["promocion_1"].Content)
}

func TestPipeline_SyncAll_PartialFailure(t *testing.T) {
	idx := &fakeIndex{failDocIDs: map[string]bool{"producto_2": true}}
	p, _ := newTestPipeline(t, idx)

	report := p.SyncAll(context.Background())

	// One bad row: counted as error, everything else still synced.
	assert.Equal(t, "success", report.Status)
	assert.Equal(t, 3, report.SyncedCount)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "producto_2")
	assert.Equal(t, 1, report.PerTypeCounts["producto"])
}

func TestPipeline_SyncAll_CollectionUnreachable(t *testing.T) {
	idx := &fakeIndex{ensureErr: vectorstore.ErrCollectionUnreachable}
	p, _ := newTestPipeline(t, idx)

	report := p.SyncAll(context.Background())

	assert.Equal(t, "error", report.Status)
	assert.Zero(t, report.SyncedCount)
	require.NotEmpty(t, report.Errors)
}

func TestPipeline_SyncIncremental_PassesSince(t *testing.T) {
	idx := &fakeIndex{}
	p, productos := newTestPipeline(t, idx)

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	report := p.SyncIncremental(context.Background(), since)

	assert.Equal(t, "success", report.Status)
	assert.Equal(t, since, productos.since)
}

func TestPipeline_SyncIncremental_ZeroSinceIsFullSync(t *testing.T) {
	idx := &fakeIndex{}
	p, productos := newTestPipeline(t, idx)

	report := p.SyncIncremental(context.Background(), time.Time{})

	assert.Equal(t, 4, report.SyncedCount)
	assert.True(t, productos.since.IsZero())
}

func TestPipeline_Status(t *testing.T) {
	idx := &fakeIndex{info: &vectorstore.Info{Exists: true, Count: 42, Dimension: 384, Distance: "Cosine"}}
	p, _ := newTestPipeline(t, idx)

	status, err := p.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.CollectionExists)
	assert.Equal(t, int64(42), status.TotalDocuments)
	assert.Equal(t, 384, status.VectorSize)
}

func TestPipeline_Status_Unavailable(t *testing.T) {
	idx := &fakeIndex{}
	p, _ := newTestPipeline(t, idx)

	_, err := p.Status(context.Background())
	assert.ErrorIs(t, err, ErrPipelineUnavailable)
}

func TestPipeline_Clear(t *testing.T) {
	idx := &fakeIndex{}
	p, _ := newTestPipeline(t, idx)

	require.NoError(t, p.Clear(context.Background()))
	assert.True(t, idx.cleared)
}
