package catalog

// LoadStatus lets a page tell "no items" apart from "could not fetch".
type LoadStatus string

const (
	StatusLoaded LoadStatus = "loaded"
	StatusEmpty  LoadStatus = "empty"
	StatusFailed LoadStatus = "failed"
)

// StatusFor derives the status of a successful load.
func StatusFor(items []Item) LoadStatus {
	if len(items) == 0 {
		return StatusEmpty
	}
	return StatusLoaded
}
