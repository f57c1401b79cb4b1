package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"transport-route-service/internal/cache"
)

// CacheAdmin is the slice of the resolver the cache endpoints need.
type CacheAdmin interface {
	CacheStats() map[string]cache.Stats
	ClearCaches()
}

type CacheHandler struct {
	Admin  CacheAdmin
	Logger *zap.Logger
}

func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Logger, http.StatusOK, h.Admin.CacheStats())
}

func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Admin.ClearCaches()
	h.Logger.Info("caches cleared")
	writeJSON(w, r, h.Logger, http.StatusOK, map[string]string{"status": "cleared"})
}
