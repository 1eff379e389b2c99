// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "hwboard.yaml")
	require.NoError(t, os.WriteFile(name, []byte(src), 0o644))
	return name
}

func TestLoad_default(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.Equal(t, zapcore.InfoLevel, c.Level())
	assert.Len(t, c.Options(), 3)
}

func TestLoad(t *testing.T) {
	name := writeConfig(t, `
size: 64
strict: true
wire_mode: diagonal
log_level: debug
books:
  - adders.hwb
  - /usr/share/hwboard/alu.hwb
`)
	c, err := config.Load(name)
	require.NoError(t, err)
	assert.Equal(t, 64, c.Size)
	assert.True(t, c.Strict)
	assert.Equal(t, zapcore.DebugLevel, c.Level())
	assert.Equal(t, []string{
		filepath.Join(filepath.Dir(name), "adders.hwb"),
		"/usr/share/hwboard/alu.hwb",
	}, c.Books)

	n := hwboard.New(c.Options()...)
	assert.Equal(t, 64, n.Grid().Size())
	assert.Equal(t, hwboard.Pt(2, 2), n.NewWire(hwboard.Pt(0, 0), hwboard.Pt(4, 2)).Bend)
}

func TestLoad_invalid(t *testing.T) {
	td := []struct {
		name string
		src  string
	}{
		{"small grid", "size: 4\n"},
		{"odd grid", "size: 65\n"},
		{"wire mode", "wire_mode: curved\n"},
		{"log level", "log_level: verbose\n"},
		{"empty book", "books: ['']\n"},
		{"unknown field", "colour: blue\n"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, d.src))
			assert.Error(t, err)
		})
	}
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
