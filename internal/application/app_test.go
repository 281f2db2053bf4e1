package application

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/lotto/internal/config"
	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableText() string {
	var b strings.Builder
	b.WriteString("번호")
	for s := 1; s <= core.ComboSize; s++ {
		fmt.Fprintf(&b, "\t%d칸\t확률", s)
	}
	b.WriteString("\n")
	for n := 1; n <= core.DefaultPoolSize; n++ {
		fmt.Fprintf(&b, "%d", n)
		for s := 1; s <= core.ComboSize; s++ {
			fmt.Fprintf(&b, "\t%d\t%.2f%%", n, float64(n%7)/2)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func fileConfig(path string) *config.Config {
	cfg := &config.Config{}
	cfg.Source.Kind = "file"
	cfg.Source.Path = path
	cfg.Source.Timeout = time.Second
	cfg.Source.WatchDebounce = 50 * time.Millisecond
	cfg.Table.Indicator = core.DefaultIndicator
	cfg.Table.Sentinels = core.DefaultSentinels
	cfg.Table.PoolSize = core.DefaultPoolSize
	cfg.Generate.Order = "grouped"
	cfg.Generate.RandomSource = "pcg"
	cfg.Generate.Seed = 7
	return cfg
}

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lotto_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(tableText()), 0o644))
	return path
}

func TestNew_FileSource(t *testing.T) {
	cfg := fileConfig(writeTable(t))
	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	assert.Nil(t, app.Pool)
	assert.Equal(t, cfg.Source.Path, app.Source.Name())

	_, err = app.Service.Table()
	require.ErrorIs(t, err, core.ErrNotLoaded)

	require.NoError(t, app.Load(context.Background()))
	assert.Equal(t, core.StateLoaded, app.Service.Status().State)
	assert.Equal(t, "balanced", app.Service.DefaultPreset())

	sp, err := app.Service.Preset("balanced")
	require.NoError(t, err)
	res, err := app.Service.Generate(context.Background(), core.GenerateRequest{Count: 3, Policies: sp})
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
}

func TestNew_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tableText()))
	}))
	t.Cleanup(srv.Close)

	cfg := fileConfig("")
	cfg.Source.Kind = "http"
	cfg.Source.URL = srv.URL

	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	require.NoError(t, app.Load(context.Background()))
	assert.Equal(t, 45, app.Service.Status().Rows)

	// Watching only applies to file sources.
	cfg.Source.Watch = true
	require.NoError(t, app.Watch(context.Background()))
	assert.Nil(t, app.watcher)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config, sel *config.Selection)
		want   string
	}{
		{"unknown order", func(c *config.Config, _ *config.Selection) { c.Generate.Order = "shuffled" }, "slot order"},
		{"unknown random source", func(c *config.Config, _ *config.Selection) { c.Generate.RandomSource = "dice" }, "random source"},
		{"unknown source kind", func(c *config.Config, _ *config.Selection) { c.Source.Kind = "ftp" }, "source kind"},
		{"bad preset", func(_ *config.Config, s *config.Selection) { s.Presets = map[string][]string{"x": {"top"}} }, `preset "x"`},
		{"unknown mode", func(_ *config.Config, s *config.Selection) { s.Mode = "magic" }, "selection mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fileConfig(writeTable(t))
			sel := config.DefaultSelection()
			tt.mutate(cfg, sel)

			_, err := New(context.Background(), cfg, sel)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	path := writeTable(t)
	cfg := fileConfig(path)
	cfg.Source.Watch = true

	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	require.NoError(t, app.Load(context.Background()))
	require.NoError(t, app.Watch(context.Background()))
	first := app.Service.Status().LoadedAt

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(tableText()), 0o644))

	assert.Eventually(t, func() bool {
		return app.Service.Status().LoadedAt.After(first)
	}, 3*time.Second, 25*time.Millisecond)
}
