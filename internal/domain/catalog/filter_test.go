package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func sampleItems() []Item {
	return []Item{
		{ID: "1", Title: "Oak Chair", Description: "Solid wood seating", Category: "furniture"},
		{ID: "2", Title: "Desk Lamp", Description: "Warm LED light", Category: "interior"},
		{ID: "3", Title: "Smart Speaker", Description: "Wooden finish gadget", Category: "gadgets"},
		{ID: "4", Title: "Wood Shelf", Description: "Wall mounted", Category: "furniture"},
		{ID: "5", Title: "Ｆｕｌｌｗｉｄｔｈ Clock", Description: "", Category: ""},
	}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilter_DefaultStateIsIdentity(t *testing.T) {
	items := sampleItems()
	got := Filter(items, DefaultFilter())
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("default filter changed items (-want +got):\n%s", diff)
	}

	got = Filter(items, FilterState{})
	assert.Equal(t, ids(items), ids(got), "empty category behaves like all")
}

func TestFilter_Empty(t *testing.T) {
	got := Filter(nil, FilterState{SearchTerm: "x", Category: "gadgets"})
	if diff := cmp.Diff([]Item{}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatal(diff)
	}
	assert.NotNil(t, got)
}

func TestFilter_Category(t *testing.T) {
	got := Filter(sampleItems(), FilterState{Category: "furniture"})
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestFilter_SearchIsCaseInsensitiveOverTitleAndDescription(t *testing.T) {
	got := Filter(sampleItems(), FilterState{SearchTerm: "WOOD", Category: AllCategories})
	assert.Equal(t, []string{"1", "3", "4"}, ids(got))

	got = Filter(sampleItems(), FilterState{SearchTerm: "fullwidth", Category: AllCategories})
	assert.Equal(t, []string{"5"}, ids(got), "compatibility forms fold to ASCII")
}

func TestFilter_SearchAndCategoryIsIntersection(t *testing.T) {
	items := sampleItems()
	bySearch := Filter(items, FilterState{SearchTerm: "wood", Category: AllCategories})
	byCategory := Filter(items, FilterState{Category: "furniture"})
	both := Filter(items, FilterState{SearchTerm: "wood", Category: "furniture"})

	inCategory := map[string]bool{}
	for _, it := range byCategory {
		inCategory[it.ID] = true
	}
	var want []string
	for _, it := range bySearch {
		if inCategory[it.ID] {
			want = append(want, it.ID)
		}
	}

	assert.Equal(t, want, ids(both))
	assert.Equal(t, []string{"1", "4"}, ids(both))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	before := ids(items)
	_ = Filter(items, FilterState{Category: "gadgets"})
	assert.Equal(t, before, ids(items))
}

func TestFilterState_Clear(t *testing.T) {
	s := FilterState{SearchTerm: "lamp", Category: "interior"}
	assert.False(t, s.IsDefault())
	assert.Equal(t, DefaultFilter(), s.Clear())
	assert.True(t, s.Clear().IsDefault())
}

func TestPreviewAndRelated(t *testing.T) {
	items := sampleItems()
	assert.Equal(t, []string{"1", "2", "3"}, ids(Preview(items, 3)))
	assert.Equal(t, ids(items), ids(Preview(items, 0)))
	assert.Equal(t, ids(items), ids(Preview(items, 50)))

	assert.Equal(t, []string{"1", "3", "4"}, ids(Related(items, "2", 3)))
	assert.Empty(t, Related(nil, "2", 3))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"furniture", "interior", "gadgets"}, Categories(sampleItems()))
}
