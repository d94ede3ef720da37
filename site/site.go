// Package site owns the live content snapshot and makes the per-request
// decisions: which page to render, when to ask for a password and what a
// submitted password unlocks.
package site

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/i18n"
	"github.com/coreh/linkshare/logging"
	"github.com/coreh/linkshare/render"
	"github.com/coreh/linkshare/theme"
)

// Options locate the three input trees and pick the reload strategy.
type Options struct {
	ContentDir string
	ThemesDir  string
	LocalesDir string
	// Dev rebuilds the snapshot for every request.
	Dev bool
}

// Snapshot is an immutable view of content, themes and catalogs. Requests
// only ever read from one snapshot.
type Snapshot struct {
	Tree     *content.ScanResult
	Themes   *theme.Registry
	Catalogs *i18n.Catalogs
	Renderer *render.Renderer
}

// Build loads themes and catalogs, then scans the content tree against the
// loaded theme defaults.
func Build(ctx context.Context, opts Options, log logging.Logger) (*Snapshot, error) {
	themes, err := theme.Load(opts.ThemesDir, log)
	if err != nil {
		return nil, errors.Wrap(err, "loading themes")
	}
	catalogs, err := i18n.Load(opts.LocalesDir, log)
	if err != nil {
		return nil, errors.Wrap(err, "loading locales")
	}
	tree, err := content.Scan(ctx, opts.ContentDir, themes, log)
	if err != nil {
		return nil, errors.Wrap(err, "scanning content")
	}
	return &Snapshot{
		Tree:     tree,
		Themes:   themes,
		Catalogs: catalogs,
		Renderer: render.New(themes, catalogs, log),
	}, nil
}

// Site serves requests from the current snapshot.
type Site struct {
	opts    Options
	log     logging.Logger
	current atomic.Pointer[Snapshot]
}

// New builds the initial snapshot. It fails when the content tree cannot be
// scanned at all.
func New(ctx context.Context, opts Options, log logging.Logger) (*Site, error) {
	if log == nil {
		log = logging.Discard()
	}
	s := &Site{opts: opts, log: log.WithComponent("site")}
	snap, err := Build(ctx, opts, log)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	return s, nil
}

// Snapshot returns the snapshot a request should use. In dev mode it is
// rebuilt from disk; a failed rebuild keeps serving the last good one.
func (s *Site) Snapshot(ctx context.Context) *Snapshot {
	if s.opts.Dev {
		if err := s.Reload(ctx); err != nil {
			s.log.Warn(ctx, err, "rebuild failed, serving previous snapshot")
		}
	}
	return s.current.Load()
}

// Reload rebuilds the snapshot and swaps it in atomically. On failure the
// current snapshot stays in place.
func (s *Site) Reload(ctx context.Context) error {
	snap, err := Build(ctx, s.opts, s.log)
	if err != nil {
		return err
	}
	s.current.Store(snap)
	return nil
}
