package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	catalogdom "folio/internal/domain/catalog"
	"folio/internal/domain/content"
)

type staticSite struct{ s content.Site }

func (s staticSite) Site() content.Site { return s.s }

func TestHomeBuild_SectionsFailIndependently(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.listFn = func(_ context.Context, collection string) ([]catalogdom.Record, error) {
		switch collection {
		case "blog":
			return nil, errors.New("blog unavailable")
		case "products":
			return []catalogdom.Record{product("1", "a", "A", 1), product("2", "b", "A", 1)}, nil
		}
		return []catalogdom.Record{}, nil
	}
	site := content.Default()
	site.PreviewSize = 1

	uc := NewHomeUsecase(NewCatalogUsecase(repo, zaptest.NewLogger(t)), staticSite{site})
	page, err := uc.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Sections, len(catalogdom.Kinds))
	assert.Equal(t, catalogdom.StatusEmpty, page.Section(catalogdom.KindWorks).Status)
	assert.Equal(t, catalogdom.StatusFailed, page.Section(catalogdom.KindBlog).Status)
	shop := page.Section(catalogdom.KindShop)
	assert.Equal(t, catalogdom.StatusLoaded, shop.Status)
	assert.Len(t, shop.Items, 1)
	assert.Equal(t, site.Hero, page.Site.Hero)
}
