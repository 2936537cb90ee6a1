package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"aavkar_pos/internal/config"
	"aavkar_pos/internal/models"
)

// Searcher answers the POS name search. Index replaces what the searcher
// knows with the given snapshot of the catalog.
type Searcher interface {
	Index(ctx context.Context, products []models.Product) error
	Search(ctx context.Context, query, categoryID string) ([]models.Product, error)
}

// MemorySearcher filters the last indexed snapshot in process.
type MemorySearcher struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemorySearcher() *MemorySearcher {
	return &MemorySearcher{}
}

func (m *MemorySearcher) Index(_ context.Context, products []models.Product) error {
	snapshot := make([]models.Product, len(products))
	copy(snapshot, products)
	m.mu.Lock()
	m.products = snapshot
	m.mu.Unlock()
	return nil
}

func (m *MemorySearcher) Search(_ context.Context, query, categoryID string) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FilterByName(FilterByCategory(m.products, categoryID), query), nil
}

func ConnectElastic(cfg config.ElasticConfig) (*elasticsearch.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("ELASTICSEARCH_ADDRESSES not configured")
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, err
	}
	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	return es, nil
}

// ElasticSearcher keeps the catalog in an Elasticsearch index and runs
// fuzzy multi-field queries against it.
type ElasticSearcher struct {
	es    *elasticsearch.Client
	index string
	log   *zap.Logger
}

func NewElasticSearcher(es *elasticsearch.Client, index string, log *zap.Logger) *ElasticSearcher {
	return &ElasticSearcher{es: es, index: index, log: log.Named("search")}
}

// Index bulk-upserts the products, keyed by product id, then deletes every
// document whose id is not in the snapshot.
func (s *ElasticSearcher) Index(ctx context.Context, products []models.Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	keep := make([]string, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		meta := map[string]any{"index": map[string]any{"_index": s.index, "_id": p.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(p); err != nil {
			return err
		}
		keep = append(keep, p.ID)
	}

	if len(keep) > 0 {
		if err := s.bulk(ctx, &buf, len(keep)); err != nil {
			return err
		}
	}
	if err := s.prune(ctx, keep); err != nil {
		return err
	}
	s.log.Debug("catalog indexed", zap.Int("products", len(keep)))
	return nil
}

func (s *ElasticSearcher) bulk(ctx context.Context, body *bytes.Buffer, n int) error {
	req := esapi.BulkRequest{Body: body, Refresh: "true"}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.String())
	}

	var out struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err == nil && out.Errors {
		s.log.Warn("bulk index finished with item errors", zap.Int("products", n))
	}
	return nil
}

// prune drops products that left the catalog. A missing index has nothing
// to prune.
func (s *ElasticSearcher) prune(ctx context.Context, keep []string) error {
	body, err := json.Marshal(pruneQuery(keep))
	if err != nil {
		return err
	}
	req := esapi.DeleteByQueryRequest{
		Index:     []string{s.index},
		Body:      bytes.NewReader(body),
		Conflicts: "proceed",
		Refresh:   esapi.BoolPtr(true),
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("prune index: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("prune index: %s", res.String())
	}

	var out struct {
		Deleted int `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err == nil && out.Deleted > 0 {
		s.log.Info("removed stale products from index", zap.Int("deleted", out.Deleted))
	}
	return nil
}

func pruneQuery(keep []string) map[string]any {
	if len(keep) == 0 {
		return map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	}
	return map[string]any{"query": map[string]any{"bool": map[string]any{
		"must_not": []any{map[string]any{"ids": map[string]any{"values": keep}}},
	}}}
}

func (s *ElasticSearcher) query(query, categoryID string) map[string]any {
	must := []any{}
	if query != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "description", "ingredients", "category.name"},
				"fuzziness": "AUTO",
			},
		})
	}
	filter := []any{}
	if categoryID != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"category.id.keyword": categoryID},
		})
	}
	return map[string]any{
		"size": 1000,
		"query": map[string]any{
			"bool": map[string]any{"must": must, "filter": filter},
		},
	}
}

func (s *ElasticSearcher) Search(ctx context.Context, query, categoryID string) ([]models.Product, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(s.query(query, categoryID)); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{Index: []string{s.index}, Body: &buf}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	out := make([]models.Product, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
