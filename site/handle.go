package site

import (
	"context"
	"net/url"

	"github.com/coreh/linkshare/auth"
	"github.com/coreh/linkshare/content"
)

// PasswordField is the form field a login submission carries.
const PasswordField = "password"

// HandleGet decides the response to a page request.
func (s *Site) HandleGet(ctx context.Context, path string, authorized auth.PathSet) Result {
	return s.get(s.Snapshot(ctx), path, ensure(authorized))
}

func (s *Site) get(snap *Snapshot, path string, authorized auth.PathSet) Result {
	sec, ok := snap.Tree.Lookup(path)
	if !ok {
		return Result{Status: StatusNotFound, Body: snap.Renderer.NotFound(snap.Tree, path), Authorized: authorized}
	}
	if !auth.IsAuthorized(snap.Tree, sec, authorized) {
		locking := auth.FindLockingSection(snap.Tree, sec, authorized)
		return Result{Status: StatusUnauthorized, Body: snap.Renderer.Login(locking, sec.Path, false), Authorized: authorized}
	}
	return Result{Status: StatusOK, Body: snap.Renderer.Page(snap.Tree, sec), Authorized: authorized}
}

// HandlePost checks a submitted password against the gate currently locking
// the requested section. Success adds that gate to the set and redirects
// back; failure shows the login again with an error.
func (s *Site) HandlePost(ctx context.Context, path string, form url.Values, authorized auth.PathSet) Result {
	snap := s.Snapshot(ctx)
	authorized = ensure(authorized)

	sec, ok := snap.Tree.Lookup(path)
	if !ok {
		return Result{Status: StatusNotFound, Body: snap.Renderer.NotFound(snap.Tree, path), Authorized: authorized}
	}
	if auth.IsAuthorized(snap.Tree, sec, authorized) {
		return Result{Status: StatusRedirect, Location: sec.Path, Authorized: authorized}
	}

	locking := auth.FindLockingSection(snap.Tree, sec, authorized)
	if !auth.CheckPassword(locking.Config.Password, form.Get(PasswordField)) {
		s.log.Info(ctx, "password rejected", "section", locking.Path)
		return Result{Status: StatusUnauthorized, Body: snap.Renderer.Login(locking, sec.Path, true), Authorized: authorized}
	}

	s.log.Debug(ctx, "section unlocked", "section", locking.Path)
	return Result{Status: StatusRedirect, Location: sec.Path, Authorized: authorized.With(locking.Path)}
}

// AssetOwner returns the section whose authorization gates a static file.
func (s *Site) AssetOwner(ctx context.Context, path string) *content.Section {
	return s.Snapshot(ctx).Tree.AssetOwner(path)
}

// ResolveAsset gates a static file request. On StatusOK the returned path is
// the file to serve; otherwise the result carries the page to show instead.
func (s *Site) ResolveAsset(ctx context.Context, path string, authorized auth.PathSet) (string, Result) {
	return s.asset(s.Snapshot(ctx), path, ensure(authorized))
}

// Serve answers a GET for any path: section pages first, then static files
// inside the content tree. A non-empty file means the caller streams it.
func (s *Site) Serve(ctx context.Context, path string, authorized auth.PathSet) (string, Result) {
	snap := s.Snapshot(ctx)
	authorized = ensure(authorized)
	if _, ok := snap.Tree.Lookup(path); ok {
		return "", s.get(snap, path, authorized)
	}
	return s.asset(snap, path, authorized)
}

func (s *Site) asset(snap *Snapshot, path string, authorized auth.PathSet) (string, Result) {
	owner, file, err := snap.Tree.ResolveAsset(path)
	if err != nil {
		return "", Result{Status: StatusNotFound, Body: snap.Renderer.NotFound(snap.Tree, path), Authorized: authorized}
	}
	if !auth.IsAuthorized(snap.Tree, owner, authorized) {
		locking := auth.FindLockingSection(snap.Tree, owner, authorized)
		return "", Result{Status: StatusUnauthorized, Body: snap.Renderer.Login(locking, owner.Path, false), Authorized: authorized}
	}
	return file, Result{Status: StatusOK, Authorized: authorized}
}

// ThemeAsset resolves a file from a theme's assets folder.
func (s *Site) ThemeAsset(ctx context.Context, themeName, rel string) (string, bool) {
	th, ok := s.Snapshot(ctx).Themes.Get(themeName)
	if !ok {
		return "", false
	}
	file, err := th.AssetFile(rel)
	if err != nil {
		return "", false
	}
	return file, true
}

// NotFound renders the themed 404 page.
func (s *Site) NotFound(ctx context.Context, path string) string {
	snap := s.Snapshot(ctx)
	return snap.Renderer.NotFound(snap.Tree, path)
}

func ensure(set auth.PathSet) auth.PathSet {
	if set == nil {
		return auth.PathSet{}
	}
	return set
}
