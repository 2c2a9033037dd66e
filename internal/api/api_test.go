package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LabelWise-io/labelwise/internal/analyzer"
	"github.com/LabelWise-io/labelwise/internal/auth"
	"github.com/LabelWise-io/labelwise/internal/config"
	"github.com/LabelWise-io/labelwise/internal/database"
	"github.com/LabelWise-io/labelwise/internal/store"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAnalyzer is a scripted ImageAnalyzer for handler tests.
type fakeAnalyzer struct {
	text string
	err  error

	gotMimeType string
	gotData     []byte
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, mimeType string, data []byte) (string, error) {
	f.gotMimeType = mimeType
	f.gotData = data
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testConfig() config.Config {
	cfg := config.Config{APIPort: 8081}
	cfg.Database.Type = "sqlite"
	cfg.Auth.SecretKey = "test-secret"
	cfg.Auth.TokenTTLMinutes = 30
	cfg.Gemini.Model = "gemini-1.5-flash"
	return cfg
}

func newTestAPI(t *testing.T, an analyzer.ImageAnalyzer) *Api {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.CreateSchema(db, "sqlite"))

	cfg := testConfig()
	apiInstance, err := NewApi(cfg, store.New(db, "sqlite"), auth.NewTokenManager(cfg.Auth.SecretKey), an, nil)
	require.NoError(t, err)
	return apiInstance
}

func TestNewApi(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		apiInstance := newTestAPI(t, &fakeAnalyzer{})
		assert.Equal(t, 8081, apiInstance.Config.APIPort)
	})

	t.Run("InvalidConfigZeroPort", func(t *testing.T) {
		_, err := NewApi(config.Config{}, nil, nil, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Must have at least a port to start API")
	})
}

func TestHome(t *testing.T) {
	apiInstance := newTestAPI(t, &fakeAnalyzer{})
	server := httptest.NewServer(apiInstance.Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "gemini-1.5-flash", body["model"])
}

func TestHeartbeat(t *testing.T) {
	apiInstance := newTestAPI(t, &fakeAnalyzer{})
	server := httptest.NewServer(apiInstance.Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/heartbeat")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestNotFound(t *testing.T) {
	apiInstance := newTestAPI(t, &fakeAnalyzer{})
	server := httptest.NewServer(apiInstance.Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
