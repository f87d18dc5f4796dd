// internal/application/usecase/home_usecase.go
package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	catalogdom "folio/internal/domain/catalog"
	"folio/internal/domain/content"
)

// CatalogLoader is the part of CatalogUsecase the home page needs.
type CatalogLoader interface {
	Load(ctx context.Context, kind catalogdom.Kind, opts LoadOptions) LoadResult
}

// SiteSource returns the current site copy.
type SiteSource interface {
	Site() content.Site
}

// HomePage is everything the home page renders.
type HomePage struct {
	Site     content.Site `json:"site"`
	Sections []LoadResult `json:"sections"`
}

// Section returns the preview of kind.
func (p HomePage) Section(kind catalogdom.Kind) LoadResult {
	for _, s := range p.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return LoadResult{Kind: kind, Items: []catalogdom.Item{}, Status: catalogdom.StatusEmpty}
}

// HomeUsecase assembles the home page.
type HomeUsecase struct {
	catalog CatalogLoader
	site    SiteSource
}

func NewHomeUsecase(catalog CatalogLoader, site SiteSource) *HomeUsecase {
	return &HomeUsecase{catalog: catalog, site: site}
}

// Build loads every preview section concurrently. Each section carries its
// own status, so one failing collection only blanks its own section.
func (u *HomeUsecase) Build(ctx context.Context) (HomePage, error) {
	site := content.Default()
	if u.site != nil {
		site = u.site.Site()
	}
	preview := site.PreviewSize
	if preview <= 0 {
		preview = content.DefaultPreviewSize
	}

	sections := make([]LoadResult, len(catalogdom.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range catalogdom.Kinds {
		g.Go(func() error {
			sections[i] = u.catalog.Load(gctx, kind, LoadOptions{Preview: preview})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return HomePage{}, err
	}
	return HomePage{Site: site, Sections: sections}, nil
}
