// Package content describes the static sections of the site: hero,
// services ticker, about, contact details and footer.
package content

// Site is the editable, non-catalog copy of the site.
type Site struct {
	Title       string   `yaml:"title" json:"title"`
	Hero        Hero     `yaml:"hero" json:"hero"`
	Services    []string `yaml:"services" json:"services"`
	About       About    `yaml:"about" json:"about"`
	Contact     Contact  `yaml:"contact" json:"contact"`
	Footer      Footer   `yaml:"footer" json:"footer"`
	PreviewSize int      `yaml:"previewSize" json:"previewSize"`
}

type Hero struct {
	Heading     string `yaml:"heading" json:"heading"`
	Description string `yaml:"description" json:"description"`
	CTALabel    string `yaml:"ctaLabel" json:"ctaLabel"`
	CTAHref     string `yaml:"ctaHref" json:"ctaHref"`
}

type About struct {
	Heading    string         `yaml:"heading" json:"heading"`
	Subheading string         `yaml:"subheading" json:"subheading"`
	Sections   []AboutSection `yaml:"sections" json:"sections"`
}

type AboutSection struct {
	Key     string `yaml:"key" json:"key"`
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
}

type Contact struct {
	Heading string `yaml:"heading" json:"heading"`
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Follow  []Link `yaml:"follow" json:"follow"`
}

type Footer struct {
	Copyright string `yaml:"copyright" json:"copyright"`
	Links     []Link `yaml:"links" json:"links"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// DefaultPreviewSize is how many items each home page section shows.
const DefaultPreviewSize = 3

// Default is the built-in copy used when no content file is present.
func Default() Site {
	return Site{
		Title: "Portfolio",
		Hero: Hero{
			Heading:     "Welcome to My Creative Portfolio",
			Description: "Explore my works, read my blog, and shop unique products",
			CTALabel:    "View My Works",
			CTAHref:     "/works",
		},
		Services: []string{"Package Design & Logo", "Furniture design", "Renders", "UI/UX Design"},
		About: About{
			Heading:    "About",
			Subheading: "Product Designer",
			Sections: []AboutSection{
				{Key: "about", Title: "ABOUT", Content: "Product designer ready to take on any design challenge."},
				{Key: "skills", Title: "SKILLS", Content: "UI/UX Design\nProduct Design\n3D Modeling\nBrand Identity\nPrototyping"},
			},
		},
		Contact: Contact{Heading: "Write me now"},
		Footer: Footer{
			Links: []Link{
				{Label: "Works", Href: "/works"},
				{Label: "Blog", Href: "/blog"},
				{Label: "Shop", Href: "/shop"},
				{Label: "Contact", Href: "/#contact"},
			},
		},
		PreviewSize: DefaultPreviewSize,
	}
}

// WithDefaults fills every empty section of s from Default.
func (s Site) WithDefaults() Site {
	d := Default()
	if s.Title == "" {
		s.Title = d.Title
	}
	if s.Hero == (Hero{}) {
		s.Hero = d.Hero
	}
	if len(s.Services) == 0 {
		s.Services = d.Services
	}
	if s.About.Heading == "" && len(s.About.Sections) == 0 {
		s.About = d.About
	}
	if s.Contact.Heading == "" {
		s.Contact.Heading = d.Contact.Heading
	}
	if len(s.Footer.Links) == 0 {
		s.Footer.Links = d.Footer.Links
	}
	if s.PreviewSize <= 0 {
		s.PreviewSize = d.PreviewSize
	}
	return s
}
