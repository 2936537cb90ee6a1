package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/images"
	"aavkar_pos/internal/models"
)

const productListBody = `{"data": {"results": [
	{"_id": "1", "name": "Rose Mukhwas", "category": {"_id": "m"}, "images": ["/img/rose.jpg"]},
	{"_id": "2", "name": "Meetha Supari", "category": "s"},
	{"_id": "3", "name": "Paan Mukhwas", "category": {"_id": "m"}}
], "total": 3, "page": 1, "limit": 1000}}`

func newTestService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api := backend.New(srv.URL, time.Second, zap.NewNop())
	return NewService(api, zap.NewNop()).WithImages(images.BaseURL{Base: "https://cdn.test"})
}

func TestListForwardsParamsAndResolvesImages(t *testing.T) {
	premium := true
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/product", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "rose", q.Get("search"))
		assert.Equal(t, "true", q.Get("isPremium"))
		assert.False(t, q.Has("isPopular"))
		w.Write([]byte(`{"results": [{"_id": "1", "images": ["/img/rose.jpg"]}], "count": 11}`))
	})

	page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 10, Search: "rose", IsPremium: &premium})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	require.Len(t, page.Results, 1)
	assert.Equal(t, []string{"https://cdn.test/img/rose.jpg"}, page.Results[0].Images)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/product/missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Product not found"}`))
	})

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, backend.IsNotFound(err))
	assert.Equal(t, "Product not found", backend.MessageOr(err, ""))
}

func TestPOSProductsFiltersAndSearches(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		w.Write([]byte(productListBody))
	})
	ctx := context.Background()

	all, err := svc.POSProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(all))
	assert.Equal(t, []string{"https://cdn.test/img/rose.jpg"}, all[0].Images)

	m, err := svc.POSProducts(ctx, "m", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(m))

	found, err := svc.POSProducts(ctx, "m", "paan")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(found))

	// No cache attached, so every call reaches the backend.
	assert.Equal(t, int32(3), calls.Load())
}

type failingSearcher struct{ indexed int }

func (f *failingSearcher) Index(context.Context, []models.Product) error {
	f.indexed++
	return nil
}

func (f *failingSearcher) Search(context.Context, string, string) ([]models.Product, error) {
	return nil, errors.New("cluster unavailable")
}

func TestPOSProductsFallsBackWhenSearchFails(t *testing.T) {
	fs := &failingSearcher{}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(productListBody))
	}).WithSearcher(fs)

	out, err := svc.POSProducts(context.Background(), "", "supari")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(out))
	assert.Equal(t, 1, fs.indexed)
}

func TestListCategories(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"results": [{"_id": "m", "name": "Mukhwas"}], "total": 1}`))
	})

	page, err := svc.ListCategories(context.Background(), 1, POSCategoryLimit, "")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Mukhwas", page.Results[0].Name)
}

func TestCreateSendsJSONAndToken(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer admin", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"name":"Rose Mukhwas"`)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"_id": "new", "name": "Rose Mukhwas"}}`))
	})

	ctx := backend.WithToken(context.Background(), "admin")
	p, err := svc.Create(ctx, models.ProductInput{Category: "m", Name: "Rose Mukhwas"})
	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)
}

func TestUpdateWithMessageOnlyAnswer(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/product/p1", r.URL.Path)
		w.Write([]byte(`{"message": "updated"}`))
	})

	p, err := svc.Update(context.Background(), "p1", models.ProductInput{Category: "m", Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "", p.ID)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, svc.Delete(context.Background(), "p1"))
	assert.Error(t, svc.Delete(context.Background(), ""))
}

// buildForm produces a parsed multipart form with one field and one file.
func buildForm(t *testing.T) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Rose Mukhwas"))
	fw, err := w.CreateFormFile("images", "rose.jpg")
	require.NoError(t, err)
	fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

func TestCreateMultipartForwardsFiles(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Rose Mukhwas", r.FormValue("name"))
		f, fh, err := r.FormFile("images")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "rose.jpg", fh.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))
		w.Write([]byte(`{"_id": "p9"}`))
	})

	p, err := svc.CreateMultipart(context.Background(), buildForm(t))
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, fh *multipart.FileHeader) (string, error) {
	return "/product-images/products/" + fh.Filename, nil
}

func TestUpdateMultipartSendsUploadedPaths(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "/product-images/products/rose.jpg", r.FormValue("images"))
		assert.Empty(t, r.MultipartForm.File)
		w.Write([]byte(`{"message": "ok"}`))
	}).WithUploader(stubUploader{})

	_, err := svc.UpdateMultipart(context.Background(), "p1", buildForm(t))
	require.NoError(t, err)
}
