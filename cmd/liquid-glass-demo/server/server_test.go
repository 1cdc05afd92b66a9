package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerStartStop(t *testing.T) {
	// Create server with random port
	srv, err := NewServer(DefaultConfig(), nil)
	require.NoError(t, err)

	addr, err := srv.Start()
	require.NoError(t, err)

	// Verify we got a real address (not :0)
	if addr == "" || addr == ":0" {
		t.Errorf("Start() returned invalid address: %q", addr)
	}
	assert.Equal(t, addr, srv.Addr())
	assert.True(t, strings.HasPrefix(srv.URL(), "http://localhost:"), srv.URL())

	// Verify HTTP server is responding
	url := srv.URL() + "/"
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<title>Liquid Glass Demo</title>")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	// Verify server is stopped (should fail to connect)
	_, err = http.Get(url)
	assert.Error(t, err, "expected connection error after shutdown")
	assert.Empty(t, srv.Addr())
	assert.Empty(t, srv.URL())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":0", cfg.Addr)
	assert.Equal(t, "Liquid Glass Demo", cfg.Title)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestServerDoubleStart(t *testing.T) {
	srv, err := NewServer(DefaultConfig(), nil)
	require.NoError(t, err)
	defer srv.Shutdown(context.Background())

	addr1, err := srv.Start()
	require.NoError(t, err)

	// Second start should return same address (no error)
	addr2, err := srv.Start()
	require.NoError(t, err)
	assert.Equal(t, addr1, addr2)
}

func TestServerCustomTitleIsEscaped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Something <Else>"
	srv, err := NewServer(cfg, nil)
	require.NoError(t, err)
	defer srv.Shutdown(context.Background())

	_, err = srv.Start()
	require.NoError(t, err)

	resp, err := http.Get(srv.URL())
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<title>Something &lt;Else&gt;</title>")
}

func TestServerRoutes(t *testing.T) {
	srv, err := NewServer(DefaultConfig(), nil)
	require.NoError(t, err)
	defer srv.Shutdown(context.Background())

	_, err = srv.Start()
	require.NoError(t, err)

	resp, err := http.Get(srv.URL() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL() + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShutdownWithoutStart(t *testing.T) {
	srv, err := NewServer(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
