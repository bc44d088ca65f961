package refdata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, path string) map[string]any {
	t.Helper()
	router := chi.NewRouter()
	NewHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleLaoBanks(t *testing.T) {
	body := serve(t, "/api/bank/lao/list")

	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["timestamp"])

	banks := body["data"].([]any)
	require.Len(t, banks, 19)
	first := banks[0].(map[string]any)
	assert.Equal(t, "BCEL", first["value"])
	assert.Equal(t, "BCEL BANK (BCEL)", first["label"])
}

func TestHandleCurrencies(t *testing.T) {
	body := serve(t, "/api/currency/list")

	currencies := body["data"].([]any)
	require.Len(t, currencies, 2)
	assert.Equal(t, "LAK", currencies[0].(map[string]any)["value"])
	assert.Equal(t, "THB", currencies[1].(map[string]any)["value"])
}

func TestHandleCustomerGroups(t *testing.T) {
	body := serve(t, "/api/customer-group/list")

	groups := body["data"].([]any)
	require.Len(t, groups, 3)
	assert.Equal(t, "VIP", groups[0].(map[string]any)["picklistLabel"])
}
