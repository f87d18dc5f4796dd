package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	sitecontent "folio/internal/domain/content"
)

const siteYAML = `
title: Studio
hero:
  heading: Hello there
services: [Branding, Renders]
previewSize: 4
`

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, sitecontent.Default(), s)
}

func TestLoad_FillsEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(siteYAML), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Studio", s.Title)
	assert.Equal(t, "Hello there", s.Hero.Heading)
	assert.Equal(t, []string{"Branding", "Renders"}, s.Services)
	assert.Equal(t, 4, s.PreviewSize)
	assert.Equal(t, sitecontent.Default().About, s.About)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSource_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(siteYAML), 0o600))

	src, err := NewSource(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "Studio", src.Site().Title)

	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0o600))
	assert.Error(t, src.Reload())
	assert.Equal(t, "Studio", src.Site().Title)
}

func TestSource_WatchPicksUpChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(siteYAML), 0o600))

	src, err := NewSource(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("title: Renamed\n"), 0o600))
	assert.Eventually(t, func() bool {
		return src.Site().Title == "Renamed"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
}
