package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptlinks/backend/config"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{
		ServerHost:      "localhost",
		ServerPort:      "8080",
		NodeURL:         "http://localhost:8081",
		ContractAddress: "0x1",
		ANSURL:          "http://localhost:8082",
		IPFSGateway:     "http://localhost:8083/ipfs",
		AvatarFallback:  "/default-avatar.png",
		AvatarMaxDepth:  3,
		HTTPTimeout:     5 * time.Second,
	}

	srv := New(cfg, nil)
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRoutesRegistered(t *testing.T) {
	cfg := &config.Config{
		NodeURL:         "http://localhost:8081",
		ContractAddress: "0x1",
		ANSURL:          "http://localhost:8082",
		IPFSGateway:     "http://localhost:8083/ipfs",
		AvatarFallback:  "/default-avatar.png",
		AvatarMaxDepth:  3,
		HTTPTimeout:     5 * time.Second,
	}
	srv := New(cfg, nil)

	// Parameter validation happens before any upstream call, so these
	// respond without a fullnode.
	for _, path := range []string{"/api/profile/bio", "/api/profile/links", "/api/profile/name", "/api/profile/exists"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		srv.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
