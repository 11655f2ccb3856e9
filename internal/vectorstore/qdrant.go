// internal/vectorstore/qdrant.go
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/httpx"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/metrics"
)

var (
	ErrCollectionUnreachable = errors.New("COLLECTION_UNREACHABLE")
	ErrVectorSearchFailed    = errors.New("VECTOR_SEARCH_FAILED")
	ErrVectorUpsertFailed    = errors.New("VECTOR_UPSERT_FAILED")
	ErrDimensionConflict     = errors.New("collection dimension conflicts with configuration")
)

// docNamespace maps stable document ids to Qdrant point UUIDs. Re-upserting
// the same doc_id always hits the same point, so upserts are idempotent.
var docNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Document is the disposable projection of a catalog row held by the index.
type Document struct {
	DocID    string
	Content  string
	Vector   []float32
	Metadata map[string]interface{}
}

// SearchResult is one ranked hit, highest score first.
type SearchResult struct {
	DocID   string
	Score   float64
	Payload map[string]interface{}
}

// Info describes the collection state for status reporting.
type Info struct {
	Exists    bool
	Count     int64
	Dimension int
	Distance  string
}

// Index is a REST client to a Qdrant collection.
type Index struct {
	baseURL    string
	apiKey     string
	collection string
	dimension  int
	distance   string
	client     *httpx.Client
	logger     logger.Logger
}

func NewIndex(cfg config.QdrantConfig, dimension int, log logger.Logger) *Index {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	distance := cfg.Distance
	if distance == "" {
		distance = "Cosine"
	}
	return &Index{
		baseURL:    cfg.GetURL(),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  dimension,
		distance:   distance,
		client:     httpx.NewClient(timeout),
		logger:     log.WithFields(map[string]interface{}{"component": "vectorstore", "collection": cfg.Collection}),
	}
}

// EnsureCollection creates the collection if missing. If it already exists
// with a different vector size the call fails: that is a configuration
// error, not something to paper over at runtime.
func (x *Index) EnsureCollection(ctx context.Context) error {
	info, err := x.CollectionInfo(ctx)
	if err != nil {
		return err
	}
	if info.Exists {
		if info.Dimension != 0 && info.Dimension != x.dimension {
			return fmt.Errorf("%w: collection has %d, config wants %d",
				ErrDimensionConflict, info.Dimension, x.dimension)
		}
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     x.dimension,
			"distance": x.distance,
		},
	}
	if err := x.putJSON(ctx, fmt.Sprintf("%s/collections/%s", x.baseURL, x.collection), body); err != nil {
		return fmt.Errorf("%w: %v", ErrCollectionUnreachable, err)
	}
	x.logger.Info("collection created", map[string]interface{}{
		"dimension": x.dimension,
		"distance":  x.distance,
	})
	return nil
}

// Upsert writes documents by deterministic point id. Last write wins.
func (x *Index) Upsert(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	points := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		payload := map[string]interface{}{
			"doc_id":  doc.DocID,
			"content": doc.Content,
		}
		for k, v := range doc.Metadata {
			payload[k] = v
		}
		points[i] = map[string]interface{}{
			"id":      uuid.NewSHA1(docNamespace, []byte(doc.DocID)).String(),
			"vector":  doc.Vector,
			"payload": payload,
		}
	}
	body := map[string]interface{}{"points": points}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", x.baseURL, x.collection)
	if err := x.putJSON(ctx, url, body); err != nil {
		return fmt.Errorf("%w: %v", ErrVectorUpsertFailed, err)
	}
	return nil
}

// Search runs a similarity query, descending by score. Filters are matched
// against payload fields before ranking: a scalar value means equality, a
// slice means any-of.
func (x *Index) Search(ctx context.Context, vector []float32, limit int, filters map[string]interface{}) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	start := time.Now()

	req := map[string]interface{}{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	if cond := buildFilter(filters); cond != nil {
		req["filter"] = cond
	}

	var resp struct {
		Result []struct {
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", x.baseURL, x.collection)
	if err := x.postJSON(ctx, url, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVectorSearchFailed, err)
	}

	metrics.SearchDuration.WithLabelValues(x.collection).Observe(time.Since(start).Seconds())

	results := make([]SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		docID, _ := r.Payload["doc_id"].(string)
		results = append(results, SearchResult{
			DocID:   docID,
			Score:   r.Score,
			Payload: r.Payload,
		})
	}
	return results, nil
}

// Delete removes documents by doc id.
func (x *Index) Delete(ctx context.Context, docIDs ...string) error {
	if len(docIDs) == 0 {
		return nil
	}
	ids := make([]string, len(docIDs))
	for i, id := range docIDs {
		ids[i] = uuid.NewSHA1(docNamespace, []byte(id)).String()
	}
	body := map[string]interface{}{"points": ids}
	url := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", x.baseURL, x.collection)
	if err := x.postJSON(ctx, url, body, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrVectorUpsertFailed, err)
	}
	return nil
}

// Clear drops and recreates the collection.
func (x *Index) Clear(ctx context.Context) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", x.baseURL, x.collection), nil)
	if err != nil {
		return err
	}
	x.setHeaders(req)
	resp, err := x.client.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollectionUnreachable, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: delete collection: %s", ErrCollectionUnreachable, resp.Status)
	}
	return x.EnsureCollection(ctx)
}

// CollectionInfo fetches existence, point count and vector size.
func (x *Index) CollectionInfo(ctx context.Context) (*Info, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/collections/%s", x.baseURL, x.collection), nil)
	if err != nil {
		return nil, err
	}
	x.setHeaders(req)
	resp, err := x.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollectionUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Info{Exists: false}, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: get collection: %s", ErrCollectionUnreachable, resp.Status)
	}

	var body struct {
		Result struct {
			PointsCount int64 `json:"points_count"`
			Config      struct {
				Params struct {
					Vectors struct {
						Size     int    `json:"size"`
						Distance string `json:"distance"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode collection info: %v", ErrCollectionUnreachable, err)
	}
	return &Info{
		Exists:    true,
		Count:     body.Result.PointsCount,
		Dimension: body.Result.Config.Params.Vectors.Size,
		Distance:  body.Result.Config.Params.Vectors.Distance,
	}, nil
}

func buildFilter(filters map[string]interface{}) map[string]interface{} {
	if len(filters) == 0 {
		return nil
	}
	must := make([]map[string]interface{}, 0, len(filters))
	for key, value := range filters {
		var match map[string]interface{}
		switch v := value.(type) {
		case []string:
			anyOf := make([]interface{}, len(v))
			for i, s := range v {
				anyOf[i] = s
			}
			match = map[string]interface{}{"any": anyOf}
		case []interface{}:
			match = map[string]interface{}{"any": v}
		default:
			match = map[string]interface{}{"value": v}
		}
		must = append(must, map[string]interface{}{
			"key":   key,
			"match": match,
		})
	}
	return map[string]interface{}{"must": must}
}

func (x *Index) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if x.apiKey != "" {
		req.Header.Set("api-key", x.apiKey)
	}
}

func (x *Index) putJSON(ctx context.Context, url string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	x.setHeaders(req)
	resp, err := x.client.DoWithContext(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("PUT %s: %s", url, resp.Status)
	}
	return nil
}

func (x *Index) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	x.setHeaders(req)
	resp, err := x.client.DoWithContext(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
