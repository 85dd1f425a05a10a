package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard/internal/store"
	"remoteboard/internal/util"
)

// 1x1 transparent GIF
var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func logoDeps(t *testing.T) (Deps, string, *int32) {
	t.Helper()

	var hits int32
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write(gifBytes)
	}))
	t.Cleanup(cdn.Close)

	u, _ := url.Parse(cdn.URL)
	d := testDeps(t, stubFetcher{})
	d.Logos = &store.LogoCache{
		DB:         d.DB,
		Client:     cdn.Client(),
		Limiter:    util.NewHostLimiter(100, 10),
		AllowHosts: []string{u.Hostname()},
	}
	return d, cdn.URL + "/acme.gif", &hits
}

func TestLogoProxyCachesUpstream(t *testing.T) {
	d, logoURL, hits := logoDeps(t)
	h := handlerFor(d)

	for i := 0; i < 2; i++ {
		rec := get(t, h, "/logo?u="+url.QueryEscape(logoURL))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age")
		assert.Equal(t, gifBytes, rec.Body.Bytes())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	rec := get(t, h, "/logo/"+store.LogoKeyFromURL(logoURL))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gifBytes, rec.Body.Bytes())

	var health struct {
		Logos struct {
			Cached int `json:"cached"`
			Hosts  int `json:"hosts"`
		} `json:"logos"`
	}
	require.NoError(t, json.Unmarshal(get(t, h, "/health").Body.Bytes(), &health))
	assert.Equal(t, 1, health.Logos.Cached)
	assert.Equal(t, 1, health.Logos.Hosts)
}

func TestLogoProxyErrors(t *testing.T) {
	d, _, hits := logoDeps(t)
	h := handlerFor(d)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/logo").Code)
	assert.Equal(t, http.StatusForbidden, get(t, h, "/logo?u="+url.QueryEscape("https://evil.example/x.png")).Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/logo/unknown-key").Code)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestLogoRoutesAbsentWithoutCache(t *testing.T) {
	h := testServer(t, stubFetcher{})
	// "/" catches unknown paths and answers 404
	assert.Equal(t, http.StatusNotFound, get(t, h, "/logo?u=x").Code)
}
