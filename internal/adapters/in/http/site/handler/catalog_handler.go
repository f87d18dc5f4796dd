// internal/adapters/in/http/site/handler/catalog_handler.go
package siteHandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	usecase "folio/internal/application/usecase"
	catalogdom "folio/internal/domain/catalog"
)

const relatedCount = 3

// CatalogHandler serves the read-only catalog API.
type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	admin   *usecase.AdminUsecase
	log     *zap.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, admin *usecase.AdminUsecase, log *zap.Logger) *CatalogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, admin: admin, log: log.Named("catalog_handler")}
}

type listResponse struct {
	Kind       catalogdom.Kind       `json:"kind"`
	Status     catalogdom.LoadStatus `json:"status"`
	Items      []catalogdom.Item     `json:"items"`
	Categories []string              `json:"categories"`
	Error      string                `json:"error,omitempty"`
}

// List handles GET /api/catalog/{kind}?q=&category=&limit=.
// A failed fetch is still a 200 with status "failed".
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	all := h.catalog.Cached(r.Context(), kind)
	res := h.catalog.List(r.Context(), kind, filterFromQuery(r.URL.Query()))
	items := catalogdom.Preview(res.Items, parseIntDefault(r.URL.Query().Get("limit"), 0))

	out := listResponse{
		Kind:       kind,
		Status:     res.Status,
		Items:      items,
		Categories: catalogdom.Categories(all.Items),
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	if res.Err != nil {
		out.Error = "could not load " + string(kind)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/catalog/{kind}/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	it, err := h.catalog.Find(r.Context(), kind, id)
	if err != nil {
		h.log.Debug("find failed", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"item":    it,
		"related": h.catalog.Related(r.Context(), kind, it.ID, relatedCount),
	})
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.admin == nil {
		writeJSON(w, http.StatusOK, []catalogdom.Category{})
		return
	}
	cats, err := h.admin.ListCategories(r.Context())
	if err != nil {
		h.log.Error("list categories failed", zap.Error(err))
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}
