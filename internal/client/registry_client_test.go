package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry(t *testing.T, handler http.HandlerFunc) RegistryClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRegistryClient(server.URL, 5*time.Second, zap.NewNop())
}

func TestFIDByName(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfers/current", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("name"))

		w.Write([]byte(`{"transfer": {"id": 1, "name": "alice", "from": 0, "to": 42}}`))
	})

	fid, err := registry.FIDByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), fid)
}

func TestFIDByNameZeroHolderIsError(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transfer": {"to": 0}}`))
	})

	_, err := registry.FIDByName(context.Background(), "unowned")
	assert.Error(t, err)
}

func TestFIDByNameNotFound(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := registry.FIDByName(context.Background(), "ghost")
	assert.Error(t, err)
}
