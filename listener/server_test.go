package listener

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func get(t *testing.T, addr, path string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func noopHandler() http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
}

func TestNewServer_SetsDefaults(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("inspect", noopHandler(), Config{}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, srv.config.Address)
	assert.Equal(t, DefaultReadHeaderTimeout, srv.server.ReadHeaderTimeout)
	assert.Equal(t, DefaultAddress, srv.Addr())
	assert.Equal(t, "inspect", srv.name)
}

func TestNewServer_InvalidConfig(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("inspect", noopHandler(), Config{ReadHeaderTimeout: -time.Second}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidTimeout)
	assert.Nil(t, srv)
}

func TestNewServer_NilHandler(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("inspect", nil, Config{}, nil, nil)
	require.ErrorIs(t, err, ErrNilHandler)
	assert.Nil(t, srv)
}

func TestNewServer_EmptyName(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("", noopHandler(), Config{}, nil, nil)
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Nil(t, srv)
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	addr := freePort(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)

		_, _ = fmt.Fprint(w, "hello")
	})

	srv, err := NewServer("inspect", handler, Config{Address: addr}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))
	assert.Equal(t, addr, srv.Addr())

	status, body := get(t, addr, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hello", body)

	require.NoError(t, srv.Stop(context.Background()))

	dialer := net.Dialer{Timeout: 100 * time.Millisecond}

	conn, dialErr := dialer.DialContext(context.Background(), "tcp", addr)
	if dialErr == nil {
		_ = conn.Close()
	}

	assert.Error(t, dialErr, "should not be able to connect after stop")
}

func TestServer_BindsEphemeralPort(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("inspect", noopHandler(), Config{Address: "127.0.0.1:0"}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))

	defer func() { _ = srv.Stop(context.Background()) }()

	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	status, _ := get(t, srv.Addr(), "/")
	assert.Equal(t, http.StatusOK, status)
}

func TestServer_RecoversAndLogsRequests(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	})

	srv, err := NewServer("inspect", handler, Config{Address: "127.0.0.1:0"}, logger, nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))

	status, _ := get(t, srv.Addr(), "/properties")
	assert.Equal(t, http.StatusInternalServerError, status)

	require.NoError(t, srv.Stop(context.Background()))

	logOutput := buf.String()
	assert.Contains(t, logOutput, "handler exploded")
	assert.Contains(t, logOutput, `"listener":"inspect"`)
	assert.Contains(t, logOutput, `"msg":"http request"`)
}

func TestServer_StartFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	srv, srvErr := NewServer("inspect", noopHandler(), Config{Address: ln.Addr().String()}, nil, nil)
	require.NoError(t, srvErr)

	err = srv.Start(context.Background())
	require.Error(t, err, "should fail when port is already in use")
	assert.ErrorIs(t, err, ErrListenFailed)
}

func TestServer_ServeErrorCallsOnServeErr(t *testing.T) {
	t.Parallel()

	var called atomic.Bool

	srv, srvErr := NewServer("inspect", noopHandler(), Config{Address: freePort(t)}, nil, func() {
		called.Store(true)
	})
	require.NoError(t, srvErr)

	require.NoError(t, srv.Start(context.Background()))

	// Closing the raw listener makes Serve fail with something other than ErrServerClosed.
	_ = srv.listener.Close()

	assert.Eventually(
		t, called.Load, time.Second, 10*time.Millisecond,
		"onServeErr callback should be called on serve error",
	)
}

func TestServer_ServeError_NilCallback(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("inspect", noopHandler(), Config{Address: freePort(t)}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))

	_ = srv.listener.Close()

	time.Sleep(100 * time.Millisecond)
}

func TestServer_StopWithCancelledContext(t *testing.T) {
	t.Parallel()

	addr := freePort(t)
	received := make(chan struct{})

	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		close(received)
		<-r.Context().Done()
	})

	srv, err := NewServer("inspect", handler, Config{Address: addr}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))

	reqCtx, reqCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer reqCancel()

	go func() {
		req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodGet, "http://"+addr, nil)
		if reqErr != nil {
			return
		}

		resp, doErr := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
		if doErr == nil {
			_ = resp.Body.Close()
		}
	}()

	<-received

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = srv.Stop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShutdownFailed)
}
