// Package navigation tracks which page is showing and which catalog item,
// if any, is selected for a detail view.
package navigation

import (
	"errors"
	"net/url"
	"strings"

	"folio/internal/domain/catalog"
)

var (
	ErrUnknownPage = errors.New("navigation: unknown page")
	ErrNoSelection = errors.New("navigation: detail requires an item")
)

type Page string

const (
	PageHome   Page = "home"
	PageList   Page = "list"
	PageDetail Page = "detail"
)

// State is Home, List(kind) or Detail(kind, itemID).
type State struct {
	Page   Page         `json:"page"`
	Kind   catalog.Kind `json:"kind,omitempty"`
	ItemID string       `json:"itemId,omitempty"`
}

func Home() State {
	return State{Page: PageHome}
}

// Navigate moves to a top-level page, clearing any selection.
// "" and "home" go Home; "blog", "works" and "shop" go to their list.
func Navigate(page string) (State, error) {
	p := strings.ToLower(strings.TrimSpace(page))
	if p == "" || p == string(PageHome) {
		return Home(), nil
	}
	kind, err := catalog.ParseKind(p)
	if err != nil {
		return State{}, ErrUnknownPage
	}
	return State{Page: PageList, Kind: kind}, nil
}

// Select opens the detail view of item.
func (s State) Select(kind catalog.Kind, item catalog.Item) (State, error) {
	if !kind.Valid() {
		return s, ErrUnknownPage
	}
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return s, ErrNoSelection
	}
	return State{Page: PageDetail, Kind: kind, ItemID: id}, nil
}

// Back returns to the list a detail view came from, and from a list to Home.
func (s State) Back() State {
	switch s.Page {
	case PageDetail:
		return State{Page: PageList, Kind: s.Kind}
	default:
		return Home()
	}
}

// Path is the URL path for the state.
func (s State) Path() string {
	switch s.Page {
	case PageList:
		return "/" + string(s.Kind)
	case PageDetail:
		return "/" + string(s.Kind) + "/" + url.PathEscape(s.ItemID)
	default:
		return "/"
	}
}

// FromPath parses a URL path produced by Path.
func FromPath(path string) (State, error) {
	p := strings.Trim(path, "/")
	if p == "" {
		return Home(), nil
	}
	parts := strings.SplitN(p, "/", 2)
	st, err := Navigate(parts[0])
	if err != nil {
		return State{}, err
	}
	if len(parts) == 1 || st.Page == PageHome {
		return st, nil
	}
	id, err := url.PathUnescape(parts[1])
	if err != nil || strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return State{}, ErrUnknownPage
	}
	return st.Select(st.Kind, catalog.Item{ID: id})
}
