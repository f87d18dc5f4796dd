// internal/adapters/in/http/site/router.go
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"folio/internal/adapters/in/http/middleware"
	siteHandler "folio/internal/adapters/in/http/site/handler"
)

// Deps is the handler set of the site.
type Deps struct {
	Log *zap.Logger

	Pages   *siteHandler.PageHandler
	Catalog *siteHandler.CatalogHandler
	Cart    *siteHandler.CartHandler
	Contact *siteHandler.ContactHandler
	Admin   *siteHandler.AdminHandler

	// AdminAuth guards /api/admin. A nil guard rejects every admin request.
	AdminAuth *middleware.AdminAuthMiddleware

	Session        middleware.SessionOptions
	AllowedOrigins []string

	// UploadsDir is served under /uploads/ when set (local asset storage).
	UploadsDir string
}

// NewRouter wires the pages and the JSON API onto a chi router.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(d.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if d.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir)))
		r.Handle("/uploads/*", fs)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(d.Session))

		if d.Pages != nil {
			r.Get("/", d.Pages.Home)
			r.Get("/cart", d.Pages.Cart)
			r.Get("/{kind}", d.Pages.Catalog)
			r.Get("/{kind}/{id}", d.Pages.Catalog)
			r.NotFound(d.Pages.NotFound)
		}

		r.Route("/api", func(r chi.Router) {
			if d.Catalog != nil {
				r.Get("/catalog/{kind}", d.Catalog.List)
				r.Get("/catalog/{kind}/{id}", d.Catalog.Get)
				r.Get("/categories", d.Catalog.Categories)
			}

			if d.Cart != nil {
				r.Get("/cart", d.Cart.Get)
				r.Delete("/cart", d.Cart.Clear)
				r.Post("/cart/items", d.Cart.Add)
				r.Put("/cart/items", d.Cart.Update)
				r.Delete("/cart/items", d.Cart.Remove)

				// HTML forms can only POST.
				r.Post("/cart/items/update", d.Cart.Update)
				r.Post("/cart/items/remove", d.Cart.Remove)
				r.Post("/cart/clear", d.Cart.Clear)
			}

			if d.Contact != nil {
				r.Post("/contact", d.Contact.Submit)
			}

			if d.Admin != nil {
				r.Route("/admin", func(r chi.Router) {
					r.Use(adminGuard(d.AdminAuth))
					r.Post("/categories", d.Admin.AddCategory)
					r.Post("/uploads", d.Admin.Upload)
					r.Post("/{kind}", d.Admin.Create)
					r.Put("/{kind}/{id}", d.Admin.Update)
					r.Delete("/{kind}/{id}", d.Admin.Delete)
				})
			}
		})
	})

	return r
}

func adminGuard(m *middleware.AdminAuthMiddleware) func(http.Handler) http.Handler {
	if m == nil {
		m = middleware.NewAdminAuthMiddleware(nil, nil, nil)
	}
	return m.Handler
}
