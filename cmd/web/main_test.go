package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"block-lens/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func genesisHex(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "cli", "testdata", "genesis.hex"))
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func postDecode(t *testing.T, body string) (*httptest.ResponseRecorder, types.BlockOutput) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/decode", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newRouter(zerolog.Nop()).ServeHTTP(w, req)

	var out types.BlockOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(zerolog.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestDecode(t *testing.T) {
	body, err := json.Marshal(types.DecodeRequest{BlockHex: genesisHex(t), Network: "mainnet"})
	require.NoError(t, err)

	w, out := postDecode(t, string(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, out.OK)
	assert.Equal(t, "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f", out.BlockHeader.BlockHash)
	require.Len(t, out.Transactions, 1)
	require.NotNil(t, out.Transactions[0].Vout[0].Address)
	assert.Equal(t, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", *out.Transactions[0].Vout[0].Address)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "bad json", body: `{`, code: "INVALID_JSON"},
		{name: "bad network", body: `{"block_hex":"00","network":"moon"}`, code: "INVALID_NETWORK"},
		{name: "bad hex", body: `{"block_hex":"0g"}`, code: "MALFORMED_HEX"},
		{name: "truncated", body: `{"block_hex":"0100"}`, code: "TRUNCATED_INPUT"},
		{name: "trailing", body: `{"block_hex":"` + genesisHex(t) + `ff"}`, code: "TRAILING_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := postDecode(t, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, out.OK)
			require.NotNil(t, out.Error)
			assert.Equal(t, tt.code, out.Error.Code)
		})
	}
}
