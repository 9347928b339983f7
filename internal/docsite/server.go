// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package docsite serves a pre-generated documentation site (for example the
// output of `dbt docs generate`) from a directory on disk.
//
// The root path answers with the entry document; every other path is resolved
// against the directory tree and answered with the file's bytes or 404.
// Directories are never listed and never fall back to an index document.
package docsite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultIndex is the entry document served at "/".
	DefaultIndex = "index.html"
	// DefaultPort is used when neither a flag nor DATABRICKS_APP_PORT is set.
	DefaultPort = 8000
)

// Options configures the server.
type Options struct {
	// Root is the directory holding the site. Defaults to ".".
	Root string
	// Index is the entry document relative to Root. Defaults to DefaultIndex.
	Index string
	// Addr is the listen address, e.g. "0.0.0.0:8000".
	Addr string
	// Logger receives one line per request. Defaults to a discard logger.
	Logger *slog.Logger
}

// Server serves the documentation site.
type Server struct {
	root   string
	index  string
	addr   string
	logger *slog.Logger
}

// New creates a server for the given options. It does not touch the disk;
// a missing root or entry document surfaces as 404 per request.
func New(opts Options) *Server {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Index == "" {
		opts.Index = DefaultIndex
	}
	if opts.Addr == "" {
		opts.Addr = fmt.Sprintf(":%d", DefaultPort)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		root:   opts.Root,
		index:  opts.Index,
		addr:   opts.Addr,
		logger: opts.Logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handleIndex)
	r.Head("/", s.handleIndex)
	r.Get("/*", s.handleStatic)
	r.Head("/*", s.handleStatic)

	return r
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("serving documentation site", "addr", s.addr, "root", s.root, "index", s.index)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down documentation server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// handleIndex serves the entry document for "/".
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, path.Clean(s.index))
}

// handleStatic resolves the request path against the site directory.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	s.serveFile(w, r, name)
}

// serveFile writes the named file with a content type inferred from its
// extension. Anything that is not a readable regular file inside the site
// directory is a 404, including symlinks that resolve outside it.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	if !fs.ValidPath(name) || name == "." {
		http.NotFound(w, r)
		return
	}
	root, err := os.OpenRoot(s.root)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer root.Close()

	f, err := root.FS().Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

// requestLogger logs method, path, status and duration for each request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
