package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "interior-design", Slugify("Interior Design"))
	assert.Equal(t, "ui/ux-design", Slugify("  UI/UX   Design "))
	assert.Equal(t, "", Slugify("   "))
}

func TestNewCategory(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c, err := NewCategory(" 3D Modeling ", now)
	require.NoError(t, err)
	assert.Equal(t, "3D Modeling", c.Name)
	assert.Equal(t, "3d-modeling", c.Slug)
	assert.Equal(t, now, c.CreatedAt)

	_, err = NewCategory("", now)
	assert.ErrorIs(t, err, ErrCategoryRequired)
}

func TestResolveCategory(t *testing.T) {
	existing := []string{"Branding", "Interior Design"}

	got, created, err := ResolveCategory(existing, "Branding", "", false)
	require.NoError(t, err)
	assert.Equal(t, "Branding", got)
	assert.False(t, created)

	got, created, err = ResolveCategory(existing, "", "Lighting", true)
	require.NoError(t, err)
	assert.Equal(t, "Lighting", got)
	assert.True(t, created)

	got, created, err = ResolveCategory(existing, "", "interior design", true)
	require.NoError(t, err)
	assert.Equal(t, "Interior Design", got)
	assert.False(t, created)

	_, _, err = ResolveCategory(existing, "", "", false)
	assert.ErrorIs(t, err, ErrCategoryRequired)
	_, _, err = ResolveCategory(existing, "Branding", " ", true)
	assert.ErrorIs(t, err, ErrCategoryRequired)
}
