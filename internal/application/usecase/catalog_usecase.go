// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	catalogdom "folio/internal/domain/catalog"
)

// LoadOptions tunes a single catalog load.
type LoadOptions struct {
	// Preview > 0 truncates the returned items to the first Preview entries.
	Preview int
}

// LoadResult is the outcome of one load. A failed fetch is reported through
// Status/Err with an empty Items slice, never as a returned error.
type LoadResult struct {
	Kind   catalogdom.Kind       `json:"kind"`
	Items  []catalogdom.Item     `json:"items"`
	Status catalogdom.LoadStatus `json:"status"`
	Err    error                 `json:"-"`

	// Seq is the load's position in the per-kind issue order.
	Seq uint64 `json:"-"`
	// Superseded is set when a newer load of the same kind was issued before
	// this one finished; its items were not committed.
	Superseded bool `json:"-"`
}

// Failed reports whether the fetch itself failed.
func (r LoadResult) Failed() bool { return r.Status == catalogdom.StatusFailed }

// snapshot is the committed state of one kind. Replaced wholesale, never mutated.
type snapshot struct {
	seq    uint64
	items  []catalogdom.Item
	status catalogdom.LoadStatus
	err    error
}

// CatalogUsecase loads, caches and looks up catalog items.
type CatalogUsecase struct {
	repo catalogdom.Repository
	log  *zap.Logger

	mu     sync.Mutex
	issued map[catalogdom.Kind]uint64
	snaps  map[catalogdom.Kind]*snapshot
}

func NewCatalogUsecase(repo catalogdom.Repository, log *zap.Logger) *CatalogUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogUsecase{
		repo:   repo,
		log:    log.Named("catalog_usecase"),
		issued: map[catalogdom.Kind]uint64{},
		snaps:  map[catalogdom.Kind]*snapshot{},
	}
}

// Load fetches the collection backing kind, normalizes and decodes every
// record (undecodable ones are skipped), and commits the result as the
// kind's snapshot unless a newer load of the same kind has been issued.
func (uc *CatalogUsecase) Load(ctx context.Context, kind catalogdom.Kind, opts LoadOptions) LoadResult {
	if !kind.Valid() {
		return LoadResult{Kind: kind, Items: []catalogdom.Item{}, Status: catalogdom.StatusFailed, Err: catalogdom.ErrUnknownKind}
	}
	seq := uc.issue(kind)

	items, err := uc.fetch(ctx, kind)
	res := LoadResult{Kind: kind, Seq: seq}
	if err != nil {
		uc.log.Warn("load failed", zap.String("kind", string(kind)), zap.Uint64("seq", seq), zap.Error(err))
		res.Items = []catalogdom.Item{}
		res.Status = catalogdom.StatusFailed
		res.Err = err
	} else {
		res.Items = items
		res.Status = catalogdom.StatusFor(items)
	}

	if !uc.commit(kind, &snapshot{seq: seq, items: res.Items, status: res.Status, err: res.Err}) {
		uc.log.Debug("load superseded", zap.String("kind", string(kind)), zap.Uint64("seq", seq))
		res.Superseded = true
	}

	if opts.Preview > 0 {
		res.Items = catalogdom.Preview(res.Items, opts.Preview)
	}
	return res
}

// Snapshot returns the last committed load of kind, if any.
func (uc *CatalogUsecase) Snapshot(kind catalogdom.Kind) (LoadResult, bool) {
	uc.mu.Lock()
	s := uc.snaps[kind]
	uc.mu.Unlock()
	if s == nil {
		return LoadResult{}, false
	}
	return LoadResult{Kind: kind, Items: s.items, Status: s.status, Err: s.err, Seq: s.seq}, true
}

// Cached returns the committed snapshot, loading the kind when nothing has
// been committed yet or the last load failed.
func (uc *CatalogUsecase) Cached(ctx context.Context, kind catalogdom.Kind) LoadResult {
	if res, ok := uc.Snapshot(kind); ok && !res.Failed() {
		return res
	}
	return uc.Load(ctx, kind, LoadOptions{})
}

// Invalidate drops the committed snapshot of kind (after admin writes).
func (uc *CatalogUsecase) Invalidate(kind catalogdom.Kind) {
	uc.mu.Lock()
	uc.issued[kind]++
	delete(uc.snaps, kind)
	uc.mu.Unlock()
}

// Find returns one item, from the committed snapshot when present and from
// the repository otherwise.
func (uc *CatalogUsecase) Find(ctx context.Context, kind catalogdom.Kind, id string) (catalogdom.Item, error) {
	if !kind.Valid() {
		return catalogdom.Item{}, catalogdom.ErrUnknownKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.Item{}, catalogdom.ErrNotFound
	}

	if res, ok := uc.Snapshot(kind); ok {
		for _, it := range res.Items {
			if it.ID == id {
				return it, nil
			}
		}
	}

	rec, err := uc.repo.Get(ctx, kind.Collection(), id)
	if err != nil {
		return catalogdom.Item{}, err
	}
	it, err := catalogdom.Decode(kind, rec)
	if err != nil {
		return catalogdom.Item{}, fmt.Errorf("catalog_usecase: decode %s/%s: %w", kind, id, err)
	}
	return it, nil
}

// Related returns up to n items of kind other than excludeID.
func (uc *CatalogUsecase) Related(ctx context.Context, kind catalogdom.Kind, excludeID string, n int) []catalogdom.Item {
	res := uc.Cached(ctx, kind)
	return catalogdom.Related(res.Items, excludeID, n)
}

// List loads kind and applies the filter state.
func (uc *CatalogUsecase) List(ctx context.Context, kind catalogdom.Kind, state catalogdom.FilterState) LoadResult {
	res := uc.Cached(ctx, kind)
	res.Items = catalogdom.Filter(res.Items, state)
	return res
}

// ----------------------------
// internal
// ----------------------------

func (uc *CatalogUsecase) fetch(ctx context.Context, kind catalogdom.Kind) ([]catalogdom.Item, error) {
	if uc.repo == nil {
		return nil, errors.New("catalog_usecase: repository is nil")
	}
	recs, err := uc.repo.List(ctx, kind.Collection(), catalogdom.DefaultListLimit)
	if err != nil {
		return nil, err
	}

	items := make([]catalogdom.Item, 0, len(recs))
	for _, r := range recs {
		it, err := catalogdom.Decode(kind, r)
		if err != nil {
			uc.log.Warn("skip record", zap.String("kind", string(kind)), zap.String("id", r.ID), zap.Error(err))
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func (uc *CatalogUsecase) issue(kind catalogdom.Kind) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.issued[kind]++
	return uc.issued[kind]
}

// commit installs s if it is still the latest issued load of kind.
func (uc *CatalogUsecase) commit(kind catalogdom.Kind, s *snapshot) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if s.seq != uc.issued[kind] {
		return false
	}
	uc.snaps[kind] = s
	return true
}
