package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/config"
)

func TestInitWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	l, err := Init(config.LogConfig{Level: "debug", Format: "json", Output: "file", Path: dir, File: "app.log", MaxSize: 1})
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	ctx := context.WithValue(context.Background(), SessionIDKey, "s-1")
	ctx = context.WithValue(ctx, SiteSlugKey, "acme")
	WithContext(ctx, logrus.NewEntry(l)).Info("loaded")

	assert.Contains(t, buf.String(), `"session_id":"s-1"`)
	assert.Contains(t, buf.String(), `"site_slug":"acme"`)
}

func TestInitReportsShortCaller(t *testing.T) {
	dir := t.TempDir()
	l, err := Init(config.LogConfig{Level: "info", Format: "json", Output: "file", Path: dir, File: "app.log", MaxSize: 1, ReportCaller: true})
	require.NoError(t, err)
	l.Info("with caller")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file":"logger_test.go:`)
	assert.Contains(t, string(data), `"func":"TestInitReportsShortCaller"`)
}
