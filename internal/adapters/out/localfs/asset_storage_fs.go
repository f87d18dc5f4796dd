// Package localfs stores uploads on the local filesystem for development.
package localfs

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AssetStorage implements asset.Storage under Root; files are served by the
// site under BaseURL (default "/uploads").
type AssetStorage struct {
	Root    string
	BaseURL string
}

func NewAssetStorage(root, baseURL string) *AssetStorage {
	b := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if b == "" {
		b = "/uploads"
	}
	return &AssetStorage{Root: root, BaseURL: b}
}

func (s *AssetStorage) path(objectPath string) (string, error) {
	obj := filepath.Clean("/" + filepath.FromSlash(strings.TrimSpace(objectPath)))
	if obj == string(filepath.Separator) {
		return "", errors.New("localfs: objectPath is empty")
	}
	return filepath.Join(s.Root, obj), nil
}

func (s *AssetStorage) Put(_ context.Context, objectPath, _ string, data []byte) error {
	p, err := s.path(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *AssetStorage) PublicURL(objectPath string) string {
	segs := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return s.BaseURL + "/" + strings.Join(segs, "/")
}

// ObjectPathFromURL maps a URL produced by PublicURL back to its object path.
func (s *AssetStorage) ObjectPathFromURL(u string) (string, bool) {
	rest, ok := strings.CutPrefix(u, s.BaseURL+"/")
	if !ok {
		return "", false
	}
	obj, err := url.PathUnescape(rest)
	if err != nil || obj == "" {
		return "", false
	}
	return obj, true
}

func (s *AssetStorage) Delete(_ context.Context, objectPath string) error {
	p, err := s.path(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns object paths under prefix, sorted.
func (s *AssetStorage) List(_ context.Context, prefix string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			out = append(out, rel)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
