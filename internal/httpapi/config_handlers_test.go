package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard/internal/config"
	"remoteboard/internal/domain"
)

func putConfig(t *testing.T, h http.Handler, cfg config.Config, origin string) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(cfg)
	require.NoError(t, err)

	req := localRequest(http.MethodPut, "/config", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConfigPutSavesAndReloads(t *testing.T) {
	d := testDeps(t, stubFetcher{})
	h := handlerFor(d)

	cfg := currentConfig(d.CfgVal)
	cfg.UI.Categories = []domain.Option{{Value: domain.All, Label: "Any"}, {Value: " internship "}}

	rec := putConfig(t, h, cfg, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	want := []domain.Option{{Value: domain.All, Label: "Any"}, {Value: "internship", Label: "internship"}}

	onDisk, err := config.Load(d.UserCfgPath)
	require.NoError(t, err)
	assert.Equal(t, want, onDisk.UI.Categories)

	var opts map[string][]domain.Option
	require.NoError(t, json.Unmarshal(get(t, h, "/api/options").Body.Bytes(), &opts))
	assert.Equal(t, want, opts["categories"])
	assert.Equal(t, domain.DefaultLevels(), opts["levels"])
}

func TestConfigPutFromListedOrigin(t *testing.T) {
	d := testDeps(t, stubFetcher{})
	h := handlerFor(d)

	rec := putConfig(t, h, currentConfig(d.CfgVal), devOrigin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfigPutRejectsOtherSites(t *testing.T) {
	d := testDeps(t, stubFetcher{})
	h := handlerFor(d)

	evil := currentConfig(d.CfgVal)
	evil.Feed.URL = "https://evil.example/feed.json"
	evil.Logos.AllowHosts = []string{"evil.example"}

	rec := putConfig(t, h, evil, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	onDisk, err := config.Load(d.UserCfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFeedURL, onDisk.Feed.URL)
	assert.Equal(t, config.DefaultFeedURL, currentConfig(d.CfgVal).Feed.URL)
	assert.NotContains(t, onDisk.Logos.AllowHosts, "evil.example")
}

func TestConfigPutReportsValidationErrors(t *testing.T) {
	d := testDeps(t, stubFetcher{})
	h := handlerFor(d)

	bad := currentConfig(d.CfgVal)
	bad.App.Port = 0

	rec := putConfig(t, h, bad, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var vr config.Validation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vr))
	assert.Contains(t, vr.Errors, "app.port must be 1..65535")
}

func TestConfigPutRejectsUnknownFields(t *testing.T) {
	h := testServer(t, stubFetcher{})

	req := localRequest(http.MethodPut, "/config", bytes.NewReader([]byte(`{"app":{"data_dir":"/x"}}`)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}
