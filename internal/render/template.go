// Package render draws the server-side pages. Every page is a sequence of
// regions, each rendered behind its own Boundary.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogdom "folio/internal/domain/catalog"
	"folio/internal/domain/navigation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type TemplateRenderer struct {
	tpl      *template.Template
	md       *MarkdownRenderer
	boundary Boundary
	log      *zap.Logger
}

func NewTemplateRenderer(log *zap.Logger) (*TemplateRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &TemplateRenderer{
		md:       NewMarkdownRenderer(),
		boundary: NewBoundary(log),
		log:      log.Named("render"),
	}
	tpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	r.tpl = tpl
	return r, nil
}

func (r *TemplateRenderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price": func(p decimal.NullDecimal) string {
			if !p.Valid || p.Decimal.IsNegative() {
				return "Price on request"
			}
			return "$" + p.Decimal.StringFixed(2)
		},
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"markdown": func(src string) template.HTML {
			h, err := r.md.Render(src)
			if err != nil {
				r.log.Warn("markdown failed", zap.Error(err))
				return template.HTML(template.HTMLEscapeString(src))
			}
			return h
		},
		"itemPath": func(kind catalogdom.Kind, id string) string {
			st, err := navigation.Home().Select(kind, catalogdom.Item{ID: id})
			if err != nil {
				return "/"
			}
			return st.Path()
		},
		"kindTitle": KindTitle,
		"lines": func(s string) []string {
			return strings.Split(strings.TrimSpace(s), "\n")
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"nowYear": func() int { return time.Now().Year() },
		"isAll":   func(c string) bool { return c == "" || c == catalogdom.AllCategories },
	}
}

// KindTitle is the heading used for a kind.
func KindTitle(k catalogdom.Kind) string {
	switch k {
	case catalogdom.KindWorks:
		return "Works"
	case catalogdom.KindBlog:
		return "Blog"
	case catalogdom.KindShop:
		return "Shop"
	}
	return string(k)
}

// ----------------------------
// Pages
// ----------------------------

func (r *TemplateRenderer) RenderHome(w io.Writer, p HomePage) error {
	regions := []template.HTML{
		r.region("hero", "hero", p.Site.Hero),
		r.region("services", "services", p.Site.Services),
	}
	for _, s := range p.Sections {
		regions = append(regions, r.region("section:"+string(s.Kind), "section", s))
	}
	regions = append(regions,
		r.region("about", "about", p.Site.About),
		r.region("contact", "contact", p),
	)
	return r.layout(w, p.Chrome, p.Site.Title, regions)
}

func (r *TemplateRenderer) RenderList(w io.Writer, p ListPage) error {
	regions := []template.HTML{
		r.region("filter", "filter", p),
		r.region("section:"+string(p.Kind), "section", p.Section),
	}
	return r.layout(w, p.Chrome, KindTitle(p.Kind), regions)
}

func (r *TemplateRenderer) RenderDetail(w io.Writer, p DetailPage) error {
	name := "detail_" + string(p.Item.Kind)
	regions := []template.HTML{r.region(name, name, p)}
	if len(p.Related) > 0 {
		regions = append(regions, r.region("related", "related", p))
	}
	return r.layout(w, p.Chrome, p.Item.Title, regions)
}

func (r *TemplateRenderer) RenderCart(w io.Writer, p CartPage) error {
	return r.layout(w, p.Chrome, "Cart", []template.HTML{r.region("cart", "cart", p)})
}

func (r *TemplateRenderer) RenderNotFound(w io.Writer, p NotFoundPage) error {
	return r.layout(w, p.Chrome, "Not found", []template.HTML{r.region("notfound", "notfound", p)})
}

// ----------------------------
// internal
// ----------------------------

func (r *TemplateRenderer) region(region, tmpl string, data any) template.HTML {
	return r.boundary.Render(region, func(w io.Writer) error {
		return r.exec(w, tmpl, data)
	})
}

func (r *TemplateRenderer) layout(w io.Writer, c Chrome, title string, regions []template.HTML) error {
	footer := r.region("footer", "footer", c.Site.Footer)
	return r.exec(w, "layout", layoutData{
		Chrome:  c,
		Title:   title,
		Regions: append(regions, footer),
	})
}

func (r *TemplateRenderer) exec(w io.Writer, name string, data any) error {
	t := r.tpl.Lookup(name)
	if t == nil {
		return fmt.Errorf("template %s not found", name)
	}
	return t.Execute(w, data)
}
