package listener

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func namedHandler(name string, handler http.Handler) fx.Option {
	return fx.Supply(fx.Annotate(handler, fx.As(new(http.Handler)), fx.ResultTags(fmt.Sprintf(`name:"%s"`, name))))
}

func TestNewModule_WithOptions(t *testing.T) {
	t.Parallel()

	addr := freePort(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "ok")
	})

	app := fxtest.New(t,
		namedHandler("inspect", handler),
		NewModule("inspect", WithAddress(addr)),
	)

	app.RequireStart()

	status, body := get(t, addr, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	app.RequireStop()
}

func TestNewModule_WithExternalConfig(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	app := fxtest.New(t,
		namedHandler("admin", noopHandler()),
		fx.Supply(fx.Annotate(Config{Address: addr}, fx.ResultTags(`name:"admin"`))),
		NewModule("admin"),
	)

	app.RequireStart()

	status, _ := get(t, addr, "/")
	assert.Equal(t, http.StatusOK, status)

	app.RequireStop()
}

func TestNewModule_UsesContainerLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	addr := freePort(t)
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	app := fxtest.New(t,
		fx.Supply(logger),
		namedHandler("inspect", noopHandler()),
		NewModule("inspect", WithAddress(addr)),
	)

	app.RequireStart()

	_, _ = get(t, addr, "/properties")

	app.RequireStop()

	assert.Contains(t, buf.String(), "starting property inspection listener")
	assert.Contains(t, buf.String(), `"path":"/properties"`)
}

func TestNewModule_TwoListeners(t *testing.T) {
	t.Parallel()

	addr1 := freePort(t)
	addr2 := freePort(t)

	app := fxtest.New(t,
		namedHandler("inspect", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "inspect")
		})),
		namedHandler("admin", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "admin")
		})),
		NewModule("inspect", WithAddress(addr1)),
		NewModule("admin", WithAddress(addr2)),
	)

	app.RequireStart()

	_, body1 := get(t, addr1, "/")
	assert.Equal(t, "inspect", body1)

	_, body2 := get(t, addr2, "/")
	assert.Equal(t, "admin", body2)

	app.RequireStop()
}

func TestNewModule_ShutdownStopsServer(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	app := fxtest.New(t,
		namedHandler("inspect", noopHandler()),
		NewModule("inspect", WithAddress(addr)),
	)

	app.RequireStart()
	app.RequireStop()

	dialer := net.Dialer{Timeout: 100 * time.Millisecond}

	conn, dialErr := dialer.DialContext(context.Background(), "tcp", addr)
	if dialErr == nil {
		_ = conn.Close()
	}

	assert.Error(t, dialErr, "should not be able to connect after shutdown")
}

func TestNewModule_ListenFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	app := fx.New(
		namedHandler("inspect", noopHandler()),
		NewModule("inspect", WithAddress(ln.Addr().String())),
		fx.NopLogger,
	)

	err = app.Start(context.Background())
	require.Error(t, err, "should fail when port is already in use")
	assert.ErrorIs(t, err, ErrListenFailed)
}

func TestNewModule_EmptyName(t *testing.T) {
	t.Parallel()

	app := fx.New(
		NewModule(""),
		fx.NopLogger,
	)

	err := app.Err()
	require.Error(t, err, "should fail with empty name")
	assert.ErrorIs(t, err, ErrEmptyName)
}
