package recommend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontlab/cart-widget-backend/internal/recommend"
)

func newClient(baseURL string) *recommend.Client {
	return recommend.NewClient(recommend.Config{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		APISecret: "test-secret",
	}, nil)
}

func TestFetchTopProducts(t *testing.T) {
	t.Run("sends credential headers to /products", func(t *testing.T) {
		var gotPath, gotKey, gotSecret string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("X-API-Key")
			gotSecret = r.Header.Get("X-API-Secret")
			_, _ = w.Write([]byte(`[{"name":"A","price":1.5}]`))
		}))
		defer srv.Close()

		products := newClient(srv.URL).FetchTopProducts(context.Background(), 3)

		require.Len(t, products, 1)
		assert.Equal(t, "/products", gotPath)
		assert.Equal(t, "test-key", gotKey)
		assert.Equal(t, "test-secret", gotSecret)
	})

	t.Run("truncates to limit preserving upstream order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[
				{"name":"P1","price":1},
				{"name":"P2","price":2},
				{"name":"P3","price":3},
				{"name":"P4","price":4},
				{"name":"P5","price":5},
				{"name":"P6","price":6},
				{"name":"P7","price":7}
			]`))
		}))
		defer srv.Close()

		products := newClient(srv.URL).FetchTopProducts(context.Background(), 3)

		require.Len(t, products, 3)
		assert.Equal(t, "P1", products[0].Name)
		assert.Equal(t, "P2", products[1].Name)
		assert.Equal(t, "P3", products[2].Name)
	})

	t.Run("discards whole batch when first element lacks price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"name":"A"},{"name":"B","price":2}]`))
		}))
		defer srv.Close()

		products := newClient(srv.URL).FetchTopProducts(context.Background(), 3)

		assert.Empty(t, products)
	})

	t.Run("discards whole batch when first element lacks name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"price":2}]`))
		}))
		defer srv.Close()

		assert.Empty(t, newClient(srv.URL).FetchTopProducts(context.Background(), 3))
	})

	t.Run("returns empty on non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		assert.Empty(t, newClient(srv.URL).FetchTopProducts(context.Background(), 3))
	})

	t.Run("returns empty on malformed JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}))
		defer srv.Close()

		assert.Empty(t, newClient(srv.URL).FetchTopProducts(context.Background(), 3))
	})

	t.Run("returns empty on empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		assert.Empty(t, newClient(srv.URL).FetchTopProducts(context.Background(), 3))
	})

	t.Run("returns empty on unreachable host", func(t *testing.T) {
		client := newClient("http://127.0.0.1:1")

		assert.Empty(t, client.FetchTopProducts(context.Background(), 3))
	})

	t.Run("returns empty when base URL is not configured", func(t *testing.T) {
		assert.Empty(t, newClient("").FetchTopProducts(context.Background(), 3))
	})

	t.Run("keeps optional fields when present", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"name":"A","price":9.99,"image":"https://cdn/img.png","url":"https://shop/a"}]`))
		}))
		defer srv.Close()

		products := newClient(srv.URL).FetchTopProducts(context.Background(), 3)

		require.Len(t, products, 1)
		assert.Equal(t, 9.99, products[0].Price)
		assert.Equal(t, "https://cdn/img.png", products[0].ImageURL)
		assert.Equal(t, "https://shop/a", products[0].URL)
	})
}
