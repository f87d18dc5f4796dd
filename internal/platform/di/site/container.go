// internal/platform/di/site/container.go
package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	outbolt "folio/internal/adapters/out/bolt"
	outfs "folio/internal/adapters/out/firestore"
	outgcs "folio/internal/adapters/out/gcs"
	"folio/internal/adapters/out/localfs"
	"folio/internal/adapters/out/mail"
	"folio/internal/adapters/out/memory"
	"folio/internal/adapters/out/thumbnail"
	usecase "folio/internal/application/usecase"
	assetdom "folio/internal/domain/asset"
	cartdom "folio/internal/domain/cart"
	catalogdom "folio/internal/domain/catalog"
	appcfg "folio/internal/infra/config"
	contentinfra "folio/internal/infra/content"
	"folio/internal/infra/secrets"
	"folio/internal/render"

	shared "folio/internal/platform/di/shared"
)

const cartSweepInterval = 10 * time.Minute

// Container is the site DI container.
// Pure DI: build deps only; routing lives in register.go.
type Container struct {
	Infra *shared.Infra
	Log   *zap.Logger

	// Repositories / ports
	CatalogRepo  catalogdom.Repository
	CategoryRepo catalogdom.CategoryRepository
	CartRepo     cartdom.Repository
	Assets       assetdom.Storage
	Mailer       usecase.Mailer
	Content      *contentinfra.Source

	// Usecases
	CatalogUC *usecase.CatalogUsecase
	CartUC    *usecase.CartUsecase
	AdminUC   *usecase.AdminUsecase
	AssetUC   *usecase.AssetUsecase
	ContactUC *usecase.ContactUsecase
	HomeUC    *usecase.HomeUsecase

	Renderer *render.TemplateRenderer

	memCarts *memory.CartStore
}

// NewContainer builds every dependency from infra.
func NewContainer(ctx context.Context, infra *shared.Infra, log *zap.Logger) (*Container, error) {
	if infra == nil || infra.Config == nil {
		return nil, errors.New("di.site: infra is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg := infra.Config
	c := &Container{Infra: infra, Log: log}

	// ------------------------------------------------------------
	// Catalog + categories
	// ------------------------------------------------------------
	switch cfg.CatalogStore {
	case appcfg.StoreFirestore:
		if infra.Firestore == nil {
			return nil, errors.New("di.site: CATALOG_STORE=firestore but firestore client is nil")
		}
		c.CatalogRepo = outfs.NewCatalogRepositoryFS(infra.Firestore)
		c.CategoryRepo = outfs.NewCategoryRepositoryFS(infra.Firestore)
	case appcfg.StoreBolt:
		if infra.Bolt == nil {
			return nil, errors.New("di.site: CATALOG_STORE=bolt but bolt store is nil")
		}
		repo := outbolt.NewCatalogRepository(infra.Bolt)
		c.CatalogRepo = repo
		c.CategoryRepo = repo
	default:
		return nil, fmt.Errorf("di.site: unknown CATALOG_STORE %q", cfg.CatalogStore)
	}

	// ------------------------------------------------------------
	// Carts
	// ------------------------------------------------------------
	switch cfg.CartStore {
	case appcfg.StoreFirestore:
		if infra.Firestore == nil {
			return nil, errors.New("di.site: CART_STORE=firestore but firestore client is nil")
		}
		c.CartRepo = outfs.NewCartRepositoryFS(infra.Firestore)
	case appcfg.StoreMemory:
		c.memCarts = memory.NewCartStore()
		c.CartRepo = c.memCarts
	default:
		return nil, fmt.Errorf("di.site: unknown CART_STORE %q", cfg.CartStore)
	}

	// ------------------------------------------------------------
	// Assets
	// ------------------------------------------------------------
	switch cfg.AssetStore {
	case appcfg.StoreGCS:
		if infra.GCS == nil {
			return nil, errors.New("di.site: ASSET_STORE=gcs but gcs client is nil")
		}
		c.Assets = outgcs.NewAssetStorageGCS(infra.GCS, cfg.GCSBucket, cfg.PublicBaseURL)
	case appcfg.StoreLocal:
		c.Assets = localfs.NewAssetStorage(cfg.UploadsDir, cfg.UploadsURL)
	default:
		return nil, fmt.Errorf("di.site: unknown ASSET_STORE %q", cfg.AssetStore)
	}

	// ------------------------------------------------------------
	// Mail
	// ------------------------------------------------------------
	apiKey := cfg.SendGridAPIKey
	if apiKey == "" && cfg.SendGridAPIKeySecret != "" {
		v, err := secrets.NewResolver(infra.SecretManager, infra.ProjectID).Get(ctx, cfg.SendGridAPIKeySecret)
		if err != nil {
			log.Warn("sendgrid key secret unavailable", zap.Error(err))
		} else {
			apiKey = v
		}
	}
	c.Mailer = mail.NewSender(apiKey, cfg.MailFromName, log)

	// ------------------------------------------------------------
	// Site content
	// ------------------------------------------------------------
	src, err := contentinfra.NewSource(cfg.ContentPath, log)
	if err != nil {
		return nil, fmt.Errorf("di.site: %w", err)
	}
	c.Content = src

	// ------------------------------------------------------------
	// Usecases
	// ------------------------------------------------------------
	c.CatalogUC = usecase.NewCatalogUsecase(c.CatalogRepo, log)
	c.CartUC = usecase.NewCartUsecase(c.CartRepo, c.CatalogUC, log)
	c.AdminUC = usecase.NewAdminUsecase(c.CatalogRepo, c.CategoryRepo, c.CatalogUC, log)
	c.AssetUC = usecase.NewAssetUsecase(c.Assets, thumbnail.NewThumbnailer(), log)
	c.ContactUC = usecase.NewContactUsecase(c.Mailer, cfg.MailFrom, cfg.ContactInbox, log)
	c.HomeUC = usecase.NewHomeUsecase(c.CatalogUC, c.Content)

	renderer, err := render.NewTemplateRenderer(log)
	if err != nil {
		return nil, fmt.Errorf("di.site: templates: %w", err)
	}
	c.Renderer = renderer

	return c, nil
}

// Start runs the background loops: content hot reload and, for in-memory
// carts, the expiry sweep. They stop with ctx.
func (c *Container) Start(ctx context.Context) {
	if err := c.Content.Watch(ctx); err != nil {
		c.Log.Warn("content watch disabled", zap.Error(err))
	}
	if c.memCarts != nil {
		go c.memCarts.Run(ctx, cartSweepInterval)
	}
}

// Close releases infra clients.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}
