package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

func setupTestRepository(t *testing.T, handler http.HandlerFunc) *GoogleSheetRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return &GoogleSheetRepository{service: service, spreadsheetID: "sheet-id", logger: zap.NewNop()}
}

func TestWriteRowsAppendsRaw(t *testing.T) {
	var got sheetsapi.ValueRange
	var query string
	repo := setupTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v4/spreadsheets/sheet-id/values/Beer!A:F:append"), r.URL.Path)
		query = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{}`))
	})

	err := repo.WriteRows(context.Background(), "Beer!A:F", [][]interface{}{{"Start", "End"}, {"a", "b"}})
	require.NoError(t, err)
	assert.Contains(t, query, "valueInputOption=RAW")
	assert.Contains(t, query, "insertDataOption=INSERT_ROWS")
	assert.Equal(t, [][]interface{}{{"Start", "End"}, {"a", "b"}}, got.Values)
}

func TestWriteRowsSkipsEmpty(t *testing.T) {
	repo := setupTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	assert.NoError(t, repo.WriteRows(context.Background(), "Beer!A:F", nil))
	assert.Error(t, repo.WriteRows(context.Background(), "", [][]interface{}{{"x"}}))
}

func TestReadRange(t *testing.T) {
	repo := setupTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"range":"Beer!A1:F2","values":[["Start","End"],["a","b"]]}`))
	})

	values, err := repo.ReadRange(context.Background(), "Beer!A:F")
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{"Start", "End"}, {"a", "b"}}, values)
}

func TestClearRange(t *testing.T) {
	var path string
	repo := setupTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, repo.ClearRange(context.Background(), "Liquor!A:I"))
	assert.True(t, strings.HasSuffix(path, ":clear"), path)
}

func TestReadRangeError(t *testing.T) {
	repo := setupTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	_, err := repo.ReadRange(context.Background(), "Beer!A:F")
	assert.ErrorContains(t, err, "read range Beer!A:F")
}
