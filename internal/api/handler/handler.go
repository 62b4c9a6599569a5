// Package handler provides HTTP handlers for the snapshot API.
// Snapshots are read from the files the batch jobs write; whole documents are
// passed through as raw bytes, filtered views are decoded first.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/albapepper/scoracle-contracts/internal/api/respond"
	"github.com/albapepper/scoracle-contracts/internal/cache"
)

// Paths locates the snapshot files on disk.
type Paths struct {
	SC     string
	Tenure string
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	paths  Paths
	cache  *cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(paths Paths, c *cache.Cache, ttl time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{paths: paths, cache: c, ttl: ttl, logger: logger}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Contracts API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": []string{
			"/api/v1/sc",
			"/api/v1/sc/{name}",
			"/api/v1/tenure",
			"/api/v1/tenure/team/{abbr}",
		},
	})
}

// HealthCheck returns basic health status and whether each snapshot exists.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"snapshots": map[string]bool{
			"sc":     fileExists(h.paths.SC),
			"tenure": fileExists(h.paths.Tenure),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// load returns a snapshot's bytes, reading through the cache.
func (h *Handler) load(key, path string) (data []byte, etag string, hit bool, err error) {
	if data, etag, ok := h.cache.Get(key); ok {
		return data, etag, true, nil
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", false, err
	}
	etag = h.cache.Set(key, data, h.ttl)
	return data, etag, false, nil
}

// serveRaw writes a whole snapshot with ETag handling.
func (h *Handler) serveRaw(w http.ResponseWriter, r *http.Request, key, path string) {
	data, etag, hit, err := h.load(key, path)
	if err != nil {
		h.writeLoadError(w, key, err)
		return
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, h.ttl, hit)
}

func (h *Handler) writeLoadError(w http.ResponseWriter, key string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		respond.WriteError(w, http.StatusNotFound, "SNAPSHOT_NOT_FOUND",
			fmt.Sprintf("The %s snapshot has not been generated yet", key))
		return
	}
	h.logger.Error("Failed to load snapshot", "snapshot", key, "error", err)
	detail := "read failed"
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		detail = "snapshot is not valid JSON"
	}
	respond.WriteErrorDetail(w, http.StatusInternalServerError, "SNAPSHOT_UNREADABLE",
		fmt.Sprintf("Failed to read the %s snapshot", key), detail)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
