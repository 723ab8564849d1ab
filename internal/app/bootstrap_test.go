package app

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/beatlights/internal/config"
	"github.com/coreman2200/beatlights/internal/lightshow"
)

func TestRevisionOverride(t *testing.T) {
	cfg := config.Default()
	r, err := RevisionOverride(cfg)
	require.NoError(t, err)
	assert.Nil(t, r)

	cfg.Revision = "legacy"
	r, err = RevisionOverride(cfg)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, lightshow.RevisionLegacy, *r)

	opts, err := DecodeOptions(cfg)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	cfg.Revision = "newest"
	_, err = RevisionOverride(cfg)
	assert.Error(t, err)
}

func TestInitCore(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Groups = map[int]int{3: 8}
	cfg.Server.WriteTimeoutMs = 50

	core, err := InitCore(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 8, core.Layout.Size(3))
	assert.Equal(t, 12, core.Layout.Size(0))
	assert.Equal(t, 4, core.Eng.Workers)
	assert.Same(t, core.State, core.Eng.Drv)
	assert.Equal(t, 50*time.Millisecond, core.State.WriteTimeout)

	cfg.Workers = 0
	_, err = InitCore(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	core, err := InitCore(config.Default(), zerolog.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- core.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
