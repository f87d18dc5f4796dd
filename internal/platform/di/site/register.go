// internal/platform/di/site/register.go
package site

import (
	"net/http"

	"folio/internal/adapters/in/http/middleware"
	sitehttp "folio/internal/adapters/in/http/site"
	siteHandler "folio/internal/adapters/in/http/site/handler"
	cartdom "folio/internal/domain/cart"
	appcfg "folio/internal/infra/config"
)

// Router constructs the handlers and returns the site router.
func (c *Container) Router() http.Handler {
	cfg := c.Infra.Config

	// A nil *auth.Client must not reach the middleware as a non-nil interface.
	var verifier middleware.TokenVerifier
	if c.Infra.FirebaseAuth != nil {
		verifier = c.Infra.FirebaseAuth
	} else {
		c.Log.Warn("firebase auth not initialized; admin API will answer 503")
	}

	uploadsDir := ""
	if cfg.AssetStore == appcfg.StoreLocal {
		uploadsDir = cfg.UploadsDir
	}

	return sitehttp.NewRouter(sitehttp.Deps{
		Log:       c.Log,
		Pages:     siteHandler.NewPageHandler(c.HomeUC, c.CatalogUC, c.CartUC, c.Content, c.Renderer, c.Log),
		Catalog:   siteHandler.NewCatalogHandler(c.CatalogUC, c.AdminUC, c.Log),
		Cart:      siteHandler.NewCartHandler(c.CartUC, c.Log),
		Contact:   siteHandler.NewContactHandler(c.ContactUC, c.Log),
		Admin:     siteHandler.NewAdminHandler(c.AdminUC, c.AssetUC, c.Log),
		AdminAuth: middleware.NewAdminAuthMiddleware(verifier, cfg.AdminUIDs, c.Log),
		Session: middleware.SessionOptions{
			Secure: cfg.CookieSecure,
			MaxAge: cartdom.DefaultCartTTL,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		UploadsDir:     uploadsDir,
	})
}
