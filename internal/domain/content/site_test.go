package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaults(t *testing.T) {
	s := Site{Title: "Studio", Services: []string{"Renders"}}.WithDefaults()

	assert.Equal(t, "Studio", s.Title)
	assert.Equal(t, []string{"Renders"}, s.Services)
	assert.Equal(t, Default().Hero, s.Hero)
	assert.Equal(t, DefaultPreviewSize, s.PreviewSize)
	assert.NotEmpty(t, s.Footer.Links)
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	in := Site{PreviewSize: 6, Hero: Hero{Heading: "Hi"}}
	s := in.WithDefaults()
	assert.Equal(t, 6, s.PreviewSize)
	assert.Equal(t, "Hi", s.Hero.Heading)
	assert.Empty(t, s.Hero.CTAHref)
}
