package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/coreh/linkshare/auth"
	"github.com/coreh/linkshare/logging"
	"github.com/coreh/linkshare/site"
	"github.com/coreh/linkshare/theme"
	"github.com/coreh/linkshare/utils"
)

// maxFormBytes caps a login submission.
const maxFormBytes = 64 << 10

// Server adapts a Site to HTTP: it carries the signed authorization cookie
// and streams files the site has approved.
type Server struct {
	Site    *site.Site
	Codec   *auth.Codec
	Log     logging.Logger
	BaseURL string
	// SecureCookies marks the auth cookie Secure; enable behind TLS.
	SecureCookies bool
}

// SetupRouter wires every route of the site. The returned handler includes
// request logging.
func SetupRouter(srv *Server) http.Handler {
	if srv.Log == nil {
		srv.Log = logging.Discard()
	}
	router := mux.NewRouter()

	router.NotFoundHandler = Custom404Handler(srv.Site)

	router.HandleFunc("/sitemap.xml", srv.Sitemap).Methods(http.MethodGet, http.MethodHead)

	// Theme assets take the reserved /assets/ prefix ahead of content.
	router.HandleFunc(theme.AssetRoute+"{theme}/{file:.+}", srv.ThemeAsset).Methods(http.MethodGet, http.MethodHead)

	router.PathPrefix("/").HandlerFunc(srv.DynamicHandler).Methods(http.MethodGet, http.MethodHead)
	router.PathPrefix("/").HandlerFunc(srv.UnlockHandler).Methods(http.MethodPost)

	return srv.loggingMiddleware(router)
}

// DynamicHandler serves section pages and the static files beneath them.
func (srv *Server) DynamicHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	file, res := srv.Site.Serve(ctx, r.URL.Path, srv.authorized(r))
	if file == "" {
		srv.writeResult(w, r, res)
		return
	}

	f, err := os.Open(file)
	if err != nil {
		srv.Log.Warn(ctx, err, "opening asset", "file", file)
		Custom404Handler(srv.Site)(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		Custom404Handler(srv.Site)(w, r)
		return
	}
	if len(res.Authorized) > 0 {
		w.Header().Set("Cache-Control", "private")
	}
	http.ServeContent(w, r, filepath.Base(file), info.ModTime(), f)
}

// UnlockHandler accepts a password submission for the requested section.
func (srv *Server) UnlockHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	before := srv.authorized(r)
	res := srv.Site.HandlePost(r.Context(), r.URL.Path, r.PostForm, before)
	if res.Status == site.StatusRedirect && len(res.Authorized) != len(before) {
		if err := srv.setAuthorized(w, res.Authorized); err != nil {
			srv.Log.Error(r.Context(), err, "issuing auth cookie")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
	srv.writeResult(w, r, res)
}

// ThemeAsset serves files from a theme's assets folder.
func (srv *Server) ThemeAsset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	file, ok := srv.Site.ThemeAsset(r.Context(), vars["theme"], vars["file"])
	if !ok {
		Custom404Handler(srv.Site)(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, file)
}

// Sitemap lists the public sections.
func (srv *Server) Sitemap(w http.ResponseWriter, r *http.Request) {
	snap := srv.Site.Snapshot(r.Context())
	out, err := utils.GenerateSitemapContent(snap.Tree, srv.baseURL(r), time.Now())
	if err != nil {
		srv.Log.Error(r.Context(), err, "generating sitemap")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" + out))
}

func (srv *Server) baseURL(r *http.Request) string {
	if srv.BaseURL != "" {
		return strings.TrimSuffix(srv.BaseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (srv *Server) writeResult(w http.ResponseWriter, r *http.Request, res site.Result) {
	if res.Status == site.StatusRedirect {
		http.Redirect(w, r, res.Location, res.Status.HTTPCode())
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(res.Status.HTTPCode())
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write([]byte(res.Body)); err != nil {
		srv.Log.Debug(r.Context(), "writing response", "error", err.Error())
	}
}

func (srv *Server) authorized(r *http.Request) auth.PathSet {
	c, err := r.Cookie(auth.CookieName)
	if err != nil {
		return auth.PathSet{}
	}
	return srv.Codec.Decode(c.Value)
}

func (srv *Server) setAuthorized(w http.ResponseWriter, set auth.PathSet) error {
	value, err := srv.Codec.Encode(set)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   srv.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
