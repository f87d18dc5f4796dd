// internal/adapters/in/http/site/handler/page_handler.go
package siteHandler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	usecase "folio/internal/application/usecase"
	catalogdom "folio/internal/domain/catalog"
	"folio/internal/domain/content"
	"folio/internal/domain/navigation"
	"folio/internal/render"
)

// PageHandler renders the HTML pages. The navigation state is derived from
// the request path.
type PageHandler struct {
	home     *usecase.HomeUsecase
	catalog  *usecase.CatalogUsecase
	cart     *usecase.CartUsecase
	site     usecase.SiteSource
	renderer *render.TemplateRenderer
	log      *zap.Logger
}

func NewPageHandler(
	home *usecase.HomeUsecase,
	catalog *usecase.CatalogUsecase,
	cart *usecase.CartUsecase,
	site usecase.SiteSource,
	renderer *render.TemplateRenderer,
	log *zap.Logger,
) *PageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageHandler{
		home:     home,
		catalog:  catalog,
		cart:     cart,
		site:     site,
		renderer: renderer,
		log:      log.Named("page_handler"),
	}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.home.Build(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	sections := make([]render.Section, 0, len(page.Sections))
	for _, s := range page.Sections {
		sections = append(sections, render.Section{Kind: s.Kind, Items: s.Items, Status: s.Status, Preview: true})
	}

	var buf bytes.Buffer
	err = h.renderer.RenderHome(&buf, render.HomePage{
		Chrome:        h.chrome(r, navigation.Home()),
		Sections:      sections,
		ContactStatus: r.URL.Query().Get("contact"),
	})
	h.write(w, r, http.StatusOK, &buf, err)
}

// Catalog handles GET /{kind} and GET /{kind}/{id}.
func (h *PageHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	st, err := navigation.FromPath(r.URL.Path)
	if err != nil || st.Page == navigation.PageHome {
		h.NotFound(w, r)
		return
	}
	if st.Page == navigation.PageDetail {
		h.detail(w, r, st)
		return
	}
	h.list(w, r, st)
}

func (h *PageHandler) list(w http.ResponseWriter, r *http.Request, st navigation.State) {
	filter := filterFromQuery(r.URL.Query())
	all := h.catalog.Cached(r.Context(), st.Kind)
	res := h.catalog.List(r.Context(), st.Kind, filter)

	var buf bytes.Buffer
	err := h.renderer.RenderList(&buf, render.ListPage{
		Chrome:     h.chrome(r, st),
		Section:    render.Section{Kind: st.Kind, Items: res.Items, Status: res.Status},
		Filter:     filter,
		Categories: catalogdom.Categories(all.Items),
	})
	h.write(w, r, http.StatusOK, &buf, err)
}

func (h *PageHandler) detail(w http.ResponseWriter, r *http.Request, st navigation.State) {
	it, err := h.catalog.Find(r.Context(), st.Kind, st.ItemID)
	if err != nil {
		if errors.Is(err, catalogdom.ErrNotFound) {
			h.notFound(w, r, st.Back(), "This item does not exist or has been removed.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = h.renderer.RenderDetail(&buf, render.DetailPage{
		Chrome:  h.chrome(r, st),
		Item:    it,
		Related: h.catalog.Related(r.Context(), st.Kind, it.ID, relatedCount),
	})
	h.write(w, r, http.StatusOK, &buf, err)
}

// Cart handles GET /cart.
func (h *PageHandler) Cart(w http.ResponseWriter, r *http.Request) {
	v, err := h.cart.View(r.Context(), sessionID(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	var buf bytes.Buffer
	err = h.renderer.RenderCart(&buf, render.CartPage{
		Chrome:   render.Chrome{Site: h.currentSite(), Nav: navigation.Home(), CartCount: v.Count},
		Lines:    v.Lines,
		Total:    v.Total,
		Warnings: v.Warnings,
	})
	h.write(w, r, http.StatusOK, &buf, err)
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, navigation.Home(), "")
}

// ----------------------------
// internal
// ----------------------------

func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request, nav navigation.State, msg string) {
	var buf bytes.Buffer
	err := h.renderer.RenderNotFound(&buf, render.NotFoundPage{Chrome: h.chrome(r, nav), Message: msg})
	h.write(w, r, http.StatusNotFound, &buf, err)
}

func (h *PageHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	var buf bytes.Buffer
	rerr := h.renderer.RenderNotFound(&buf, render.NotFoundPage{
		Chrome:  h.chrome(r, navigation.Home()),
		Message: "Something went wrong. Please try again later.",
	})
	h.write(w, r, http.StatusInternalServerError, &buf, rerr)
}

func (h *PageHandler) write(w http.ResponseWriter, r *http.Request, status int, buf *bytes.Buffer, err error) {
	if err != nil {
		h.log.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) chrome(r *http.Request, nav navigation.State) render.Chrome {
	c := render.Chrome{Site: h.currentSite(), Nav: nav}
	if h.cart != nil {
		if sid := sessionID(r); strings.TrimSpace(sid) != "" {
			if v, err := h.cart.View(r.Context(), sid); err == nil {
				c.CartCount = v.Count
			}
		}
	}
	return c
}

func (h *PageHandler) currentSite() content.Site {
	if h.site == nil {
		return content.Default()
	}
	return h.site.Site()
}
