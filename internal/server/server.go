package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"innkeep/internal/auth"
	"innkeep/internal/blobstore"
	"innkeep/internal/filecheck"
	"innkeep/internal/store"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
)

// Options carries tunables for the HTTP server.
type Options struct {
	MaxUploadBytes     int64
	MultipartMaxMemory int64
}

// Server wraps HTTP handlers for the innkeep API.
type Server struct {
	addr            string
	store           *store.Store
	blobStore       blobstore.BlobStore
	tokens          *auth.TokenIssuer
	documentService *DocumentService
	logger          *slog.Logger
	multipartMemory int64
	maxUploadBytes  int64
}

// New creates a new server instance.
func New(addr string, st *store.Store, blobs blobstore.BlobStore, tokens *auth.TokenIssuer, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = filecheck.DefaultMaxSizeBytes
	}
	if opts.MultipartMaxMemory <= 0 {
		opts.MultipartMaxMemory = 8 << 20
	}

	validator := filecheck.New(opts.MaxUploadBytes)
	cleaner := NewCleaner(blobs, logger)

	return &Server{
		addr:            addr,
		store:           st,
		blobStore:       blobs,
		tokens:          tokens,
		documentService: NewDocumentService(st, blobs, validator, cleaner, logger),
		logger:          logger,
		multipartMemory: opts.MultipartMaxMemory,
		maxUploadBytes:  opts.MaxUploadBytes,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		return u.Host, nil
	}
	return apiURL, nil
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
