package catalog

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/cache"
	"aavkar_pos/internal/images"
	"aavkar_pos/internal/models"
)

const (
	productsPath   = "/products/product"
	categoriesPath = "/products/category"

	cachePrefix = "catalog:"

	// POSCatalogLimit is how many products the POS screen loads at once.
	POSCatalogLimit = 1000
	// POSCategoryLimit is how many categories the POS tabs show.
	POSCategoryLimit = 100
)

// Uploader stores an uploaded image and returns the path to save on the
// product.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type ListParams struct {
	Page      int
	Limit     int
	Search    string
	IsPremium *bool
	IsPopular *bool
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.IsPremium != nil {
		q.Set("isPremium", strconv.FormatBool(*p.IsPremium))
	}
	if p.IsPopular != nil {
		q.Set("isPopular", strconv.FormatBool(*p.IsPopular))
	}
	return q
}

// Service reads and writes the product catalog through the backend. Reads
// are cached in Redis when a cache is attached; every write drops the
// whole catalog cache.
type Service struct {
	api     *backend.Client
	cache   *cache.Cache
	ttl     time.Duration
	search  Searcher
	images  images.Resolver
	uploads Uploader
	log     *zap.Logger
	indexed atomic.Bool
}

func NewService(api *backend.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		api:    api,
		search: NewMemorySearcher(),
		images: images.BaseURL{},
		log:    log.Named("catalog"),
	}
}

func (s *Service) WithCache(c *cache.Cache, ttl time.Duration) *Service {
	s.cache, s.ttl = c, ttl
	return s
}

func (s *Service) WithSearcher(x Searcher) *Service {
	s.search = x
	return s
}

func (s *Service) WithImages(r images.Resolver) *Service {
	s.images = r
	return s
}

func (s *Service) WithUploader(u Uploader) *Service {
	s.uploads = u
	return s
}

func cacheKey(kind string, q url.Values) string {
	sum := md5.Sum([]byte(q.Encode()))
	return cachePrefix + kind + ":" + hex.EncodeToString(sum[:])
}

func (s *Service) resolve(ctx context.Context, products []models.Product) {
	for i := range products {
		products[i].Images = images.ResolveAll(ctx, s.images, products[i].Images)
	}
}

// fetchPage returns the stored (unresolved) page and whether it came from
// the backend rather than the cache.
func (s *Service) fetchPage(ctx context.Context, p ListParams) (models.ProductPage, bool, error) {
	q := p.values()
	key := cacheKey("products", q)

	var page models.ProductPage
	if s.cache.GetJSON(ctx, key, &page) {
		return page, false, nil
	}

	var raw json.RawMessage
	if err := s.api.JSON(ctx, http.MethodGet, productsPath, q, nil, &raw); err != nil {
		return models.ProductPage{}, false, err
	}
	page = ParseProductPage(raw)
	if page.Page == 0 {
		page.Page = p.Page
	}
	if page.Limit == 0 {
		page.Limit = p.Limit
	}
	s.cache.SetJSON(ctx, key, page, s.ttl)
	return page, true, nil
}

func (s *Service) List(ctx context.Context, p ListParams) (models.ProductPage, error) {
	page, _, err := s.fetchPage(ctx, p)
	if err != nil {
		return models.ProductPage{}, err
	}
	s.resolve(ctx, page.Results)
	return page, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Product, error) {
	key := cachePrefix + "product:" + id

	var p models.Product
	if !s.cache.GetJSON(ctx, key, &p) {
		var raw json.RawMessage
		if err := s.api.JSON(ctx, http.MethodGet, productsPath+"/"+url.PathEscape(id), nil, nil, &raw); err != nil {
			return models.Product{}, err
		}
		var err error
		if p, err = ParseProduct(raw); err != nil {
			return models.Product{}, fmt.Errorf("product %s: %w", id, err)
		}
		s.cache.SetJSON(ctx, key, p, s.ttl)
	}
	p.Images = images.ResolveAll(ctx, s.images, p.Images)
	return p, nil
}

// POSProducts returns the products the POS grid shows for a category tab
// and search box. Name searches go to the searcher; if it fails the
// loaded catalog is filtered in process instead.
func (s *Service) POSProducts(ctx context.Context, categoryID, query string) ([]models.Product, error) {
	page, fresh, err := s.fetchPage(ctx, ListParams{Page: 1, Limit: POSCatalogLimit})
	if err != nil {
		return nil, err
	}
	if fresh || !s.indexed.Load() {
		if err := s.search.Index(ctx, page.Results); err != nil {
			s.log.Warn("index catalog failed", zap.Error(err))
		} else {
			s.indexed.Store(true)
		}
	}

	var out []models.Product
	if query == "" {
		out = FilterByCategory(page.Results, categoryID)
	} else if out, err = s.search.Search(ctx, query, categoryID); err != nil {
		s.log.Warn("search failed, filtering locally", zap.String("query", query), zap.Error(err))
		out = FilterByName(FilterByCategory(page.Results, categoryID), query)
	}
	s.resolve(ctx, out)
	return out, nil
}

func (s *Service) ListCategories(ctx context.Context, page, limit int, search string) (models.CategoryPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	key := cacheKey("categories", q)

	var out models.CategoryPage
	if s.cache.GetJSON(ctx, key, &out) {
		return out, nil
	}
	var raw json.RawMessage
	if err := s.api.JSON(ctx, http.MethodGet, categoriesPath, q, nil, &raw); err != nil {
		return models.CategoryPage{}, err
	}
	out = ParseCategoryPage(raw)
	s.cache.SetJSON(ctx, key, out, s.ttl)
	return out, nil
}

func (s *Service) invalidate(ctx context.Context) {
	s.cache.DeletePrefix(ctx, cachePrefix)
	s.indexed.Store(false)
}

// written parses what the backend answered to a write. Some endpoints
// answer with the product, others only with a message; the latter gives a
// zero product.
func written(raw json.RawMessage) models.Product {
	p, err := ParseProduct(raw)
	if err != nil {
		return models.Product{}
	}
	return p
}

func (s *Service) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var raw json.RawMessage
	if err := s.api.JSON(ctx, http.MethodPost, productsPath, nil, in, &raw); err != nil {
		return models.Product{}, err
	}
	s.invalidate(ctx)
	s.log.Info("product created", zap.String("name", in.Name))
	return written(raw), nil
}

func (s *Service) Update(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	var raw json.RawMessage
	if err := s.api.JSON(ctx, http.MethodPut, productsPath+"/"+url.PathEscape(id), nil, in, &raw); err != nil {
		return models.Product{}, err
	}
	s.invalidate(ctx)
	s.log.Info("product updated", zap.String("id", id))
	return written(raw), nil
}

func (s *Service) CreateMultipart(ctx context.Context, form *multipart.Form) (models.Product, error) {
	return s.sendMultipart(ctx, http.MethodPost, productsPath, form)
}

func (s *Service) UpdateMultipart(ctx context.Context, id string, form *multipart.Form) (models.Product, error) {
	return s.sendMultipart(ctx, http.MethodPut, productsPath+"/"+url.PathEscape(id), form)
}

func (s *Service) sendMultipart(ctx context.Context, method, path string, form *multipart.Form) (models.Product, error) {
	body, contentType, err := s.encodeForm(ctx, form)
	if err != nil {
		return models.Product{}, err
	}
	var raw json.RawMessage
	if err := s.api.Raw(ctx, method, path, body, contentType, &raw); err != nil {
		return models.Product{}, err
	}
	s.invalidate(ctx)
	s.log.Info("product written (multipart)", zap.String("method", method), zap.String("path", path))
	return written(raw), nil
}

// encodeForm rebuilds the admin form for the backend. With an uploader the
// image files are stored first and only their paths are sent as "images"
// fields; otherwise the files are forwarded as they came.
func (s *Service) encodeForm(ctx context.Context, form *multipart.Form) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, vals := range form.Value {
		for _, v := range vals {
			if err := w.WriteField(name, v); err != nil {
				return nil, "", err
			}
		}
	}
	for name, files := range form.File {
		for _, fh := range files {
			if s.uploads != nil {
				p, err := s.uploads.Upload(ctx, fh)
				if err != nil {
					return nil, "", err
				}
				if err := w.WriteField(name, p); err != nil {
					return nil, "", err
				}
				continue
			}
			if err := copyFile(w, name, fh); err != nil {
				return nil, "", err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func copyFile(w *multipart.Writer, field string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()
	dst, err := w.CreateFormFile(field, fh.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("product id is required")
	}
	if err := s.api.JSON(ctx, http.MethodDelete, productsPath+"/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("product deleted", zap.String("id", id))
	return nil
}
