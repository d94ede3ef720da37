package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce collapses bursts of file events into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Watch reloads the snapshot whenever content, themes or locales change on
// disk. It blocks until ctx is done.
func (s *Site) Watch(ctx context.Context, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	for _, root := range []string{s.opts.ContentDir, s.opts.ThemesDir, s.opts.LocalesDir} {
		if root == "" {
			continue
		}
		if err := addRecursive(watcher, root); err != nil {
			s.log.Warn(ctx, err, "directory not watched", "dir", root)
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						s.log.Warn(ctx, err, "new directory not watched", "dir", event.Name)
					}
				}
			}
			s.log.Debug(ctx, "change detected", "file", event.Name, "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := s.Reload(ctx); err != nil {
					s.log.Error(ctx, err, "reload failed, keeping previous snapshot")
					return
				}
				s.log.Info(ctx, "content reloaded")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn(ctx, err, "watcher error")
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return errors.Wrapf(w.Add(p), "watching %s", p)
		}
		return nil
	})
}
