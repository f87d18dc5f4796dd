// Package content loads the site copy from a YAML file and keeps it fresh
// while the process runs.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	sitecontent "folio/internal/domain/content"
)

const reloadDebounce = 200 * time.Millisecond

// Load reads the YAML file at path. A missing file yields the built-in
// defaults; a malformed one is an error.
func Load(path string) (sitecontent.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sitecontent.Default(), nil
		}
		return sitecontent.Site{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	var s sitecontent.Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return sitecontent.Site{}, fmt.Errorf("content: parse %s: %w", path, err)
	}
	return s.WithDefaults(), nil
}

// Source serves the current site copy. Reloads swap the whole value, so
// readers never see a half-applied file.
type Source struct {
	path    string
	current atomic.Pointer[sitecontent.Site]
	log     *zap.Logger
}

func NewSource(path string, log *zap.Logger) (*Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Source{path: path, log: log.Named("content")}
	site, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(&site)
	return s, nil
}

// Site returns the current copy.
func (s *Source) Site() sitecontent.Site {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return sitecontent.Default()
}

// Reload re-reads the file. On error the previous copy stays in place.
func (s *Source) Reload() error {
	site, err := Load(s.path)
	if err != nil {
		s.log.Warn("reload failed, keeping previous content", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.current.Store(&site)
	s.log.Info("content reloaded", zap.String("path", s.path))
	return nil
}

// Watch reloads the file whenever it changes, until ctx is done. The
// directory is watched so editors that replace the file are picked up.
func (s *Source) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("content: watch %s: %w", dir, err)
	}
	go s.watchLoop(ctx, w)
	return nil
}

func (s *Source) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	target := filepath.Clean(s.path)
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				debounce.Reset(reloadDebounce)
			}
		case <-debounce.C:
			_ = s.Reload()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn("watch error", zap.Error(err))
		}
	}
}
