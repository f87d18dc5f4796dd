package render

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBoundary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := NewBoundary(zap.New(core))

	ok := b.Render("hero", func(w io.Writer) error {
		_, err := io.WriteString(w, "<h1>hi</h1>")
		return err
	})
	assert.Equal(t, "<h1>hi</h1>", string(ok))

	failed := b.Render("works", func(w io.Writer) error {
		_, _ = io.WriteString(w, "<ul><li>half")
		return errors.New("boom")
	})
	assert.Empty(t, failed, "partial output is discarded")

	panicked := b.Render("shop", func(io.Writer) error {
		var m map[string]int
		m["x"] = 1
		return nil
	})
	assert.Empty(t, panicked)

	entries := logs.FilterField(zap.String("region", "works")).All()
	assert.Len(t, entries, 1)
	assert.Len(t, logs.FilterField(zap.String("region", "shop")).All(), 1)
}
