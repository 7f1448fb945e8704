package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_ServesUntilCancelled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	srv := New(config.ServerConfig{Address: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}, handler, zap.NewNop())

	var stopped []string
	srv.OnStop(func() error { stopped = append(stopped, "db"); return nil })
	srv.OnStop(func() error { stopped = append(stopped, "cache"); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("Run returned before listening: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + srv.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, []string{"db", "cache"}, stopped)
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := New(config.ServerConfig{Address: "127.0.0.1", Port: port}, http.NotFoundHandler(), nil)
	err = srv.Run(context.Background())
	assert.ErrorContains(t, err, "listen 127.0.0.1:")
}

func TestNew_Timeouts(t *testing.T) {
	srv := New(config.ServerConfig{
		Address:           "0.0.0.0",
		Port:              8080,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Minute,
	}, http.NotFoundHandler(), nil)

	assert.Equal(t, "0.0.0.0:8080", srv.server.Addr)
	assert.Equal(t, 5*time.Second, srv.server.ReadHeaderTimeout)
	assert.Equal(t, time.Minute, srv.server.WriteTimeout)
	assert.Equal(t, defaultShutdownTimeout, srv.shutdownTimeout)
}
