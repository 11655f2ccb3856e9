// internal/sync/pipeline.go
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/metrics"
	"github.com/EmmanuelSan01/SportBot/internal/models"
	"github.com/EmmanuelSan01/SportBot/internal/vectorstore"
)

var ErrPipelineUnavailable = errors.New("SYNC_PIPELINE_UNAVAILABLE")

// ProductoSource, CategoriaSource and PromocionSource are the read-only
// slices of the relational store the pipeline needs.
type ProductoSource interface {
	ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Producto, error)
}

type CategoriaSource interface {
	ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Categoria, error)
}

type PromocionSource interface {
	ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Promocion, error)
}

// Embedder encodes rendered content. Failures degrade to a zero vector
// inside the provider, so Embed never errors here.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// VectorIndex is the slice of the Qdrant wrapper the pipeline uses.
type VectorIndex interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, docs ...vectorstore.Document) error
	Clear(ctx context.Context) error
	CollectionInfo(ctx context.Context) (*vectorstore.Info, error)
}

// Pipeline projects catalog rows into the vector index.
type Pipeline struct {
	productos  ProductoSource
	categorias CategoriaSource
	promos     PromocionSource
	embedder   Embedder
	index      VectorIndex
	logger     logger.Logger
}

func NewPipeline(
	productos ProductoSource,
	categorias CategoriaSource,
	promos PromocionSource,
	embedder Embedder,
	index VectorIndex,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		productos:  productos,
		categorias: categorias,
		promos:     promos,
		embedder:   embedder,
		index:      index,
		logger:     log.WithFields(map[string]interface{}{"component": "sync"}),
	}
}

// SyncAll projects every catalog row.
func (p *Pipeline) SyncAll(ctx context.Context) *models.SyncReport {
	return p.run(ctx, time.Time{})
}

// SyncIncremental projects rows modified after since. A zero since degrades
// to a full sync.
func (p *Pipeline) SyncIncremental(ctx context.Context, since time.Time) *models.SyncReport {
	return p.run(ctx, since)
}

func (p *Pipeline) run(ctx context.Context, since time.Time) *models.SyncReport {
	report := &models.SyncReport{
		PerTypeCounts: map[string]int{},
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	if p.embedder == nil {
		report.Status = "error"
		report.Message = "embedding provider unavailable"
		return report
	}

	if err := p.index.EnsureCollection(ctx); err != nil {
		p.logger.Error("collection unavailable, sync aborted", map[string]interface{}{"error": err.Error()})
		report.Status = "error"
		report.Message = "vector collection unreachable"
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	p.syncProductos(ctx, since, report)
	p.syncCategorias(ctx, since, report)
	p.syncPromociones(ctx, since, report)

	// Per-row failures do not flip the status: the pipeline ran.
	report.Status = "success"
	report.Message = fmt.Sprintf("synchronized %d documents", report.SyncedCount)
	if len(report.Errors) > 0 {
		report.Message = fmt.Sprintf("synchronized %d documents with %d errors",
			report.SyncedCount, len(report.Errors))
	}

	p.logger.Info("sync finished", map[string]interface{}{
		"synced": report.SyncedCount,
		"errors": len(report.Errors),
		"since":  since,
	})
	return report
}

func (p *Pipeline) syncProductos(ctx context.Context, since time.Time, report *models.SyncReport) {
	rows, err := p.productos.ListModifiedSince(ctx, since)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("productos: %v", err))
		return
	}
	for _, row := range rows {
		doc := vectorstore.Document{
			DocID:   fmt.Sprintf("producto_%d", row.ID),
			Content: renderProducto(row),
			Metadata: map[string]interface{}{
				"type":       "producto",
				"id":         row.ID,
				"nombre":     row.Nombre,
				"categoria":  row.CategoriaNombre,
				"precio":     row.Precio,
				"disponible": row.Disponible,
			},
		}
		p.upsertOne(ctx, doc, "producto", report)
	}
}

func (p *Pipeline) syncCategorias(ctx context.Context, since time.Time, report *models.SyncReport) {
	rows, err := p.categorias.ListModifiedSince(ctx, since)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("categorias: %v", err))
		return
	}
	for _, row := range rows {
		doc := vectorstore.Document{
			DocID:   fmt.Sprintf("categoria_%d", row.ID),
			Content: renderCategoria(row),
			Metadata: map[string]interface{}{
				"type":   "categoria",
				"id":     row.ID,
				"nombre": row.Nombre,
			},
		}
		p.upsertOne(ctx, doc, "categoria", report)
	}
}

func (p *Pipeline) syncPromociones(ctx context.Context, since time.Time, report *models.SyncReport) {
	rows, err := p.promos.ListModifiedSince(ctx, since)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("promociones: %v", err))
		return
	}
	for _, row := range rows {
		doc := vectorstore.Document{
			DocID:   fmt.Sprintf("promocion_%d", row.ID),
			Content: renderPromocion(row),
			Metadata: map[string]interface{}{
				"type":      "promocion",
				"id":        row.ID,
				"titulo":    row.Titulo,
				"descuento": row.Descuento,
				"producto":  row.ProductoNombre,
				"activa":    row.Activa,
			},
		}
		p.upsertOne(ctx, doc, "promocion", report)
	}
}

func (p *Pipeline) upsertOne(ctx context.Context, doc vectorstore.Document, contentType string, report *models.SyncReport) {
	doc.Vector = p.embedder.Embed(ctx, doc.Content)
	if err := p.index.Upsert(ctx, doc); err != nil {
		p.logger.Warn("document upsert failed", map[string]interface{}{
			"docId": doc.DocID,
			"error": err.Error(),
		})
		metrics.SyncErrors.WithLabelValues(contentType).Inc()
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", doc.DocID, err))
		return
	}
	metrics.SyncedDocuments.WithLabelValues(contentType).Inc()
	report.SyncedCount++
	report.PerTypeCounts[contentType]++
}

// Status reports the current collection state.
func (p *Pipeline) Status(ctx context.Context) (*models.CollectionStatus, error) {
	info, err := p.index.CollectionInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPipelineUnavailable, err)
	}
	return &models.CollectionStatus{
		CollectionExists: info.Exists,
		TotalDocuments:   info.Count,
		VectorSize:       info.Dimension,
		DistanceMetric:   info.Distance,
	}, nil
}

// Clear drops every projected document.
func (p *Pipeline) Clear(ctx context.Context) error {
	if err := p.index.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrPipelineUnavailable, err)
	}
	return nil
}
