package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fossabot/short/internal/models"
)

const linkCacheTTL = 10 * time.Minute

func linkCacheKey(slug string) string {
	return "link:" + slug
}

// lookupLink serves the resolution path: redis first, then the store, with
// the store result written back to the cache. A nil link means unknown slug.
func (h *Handler) lookupLink(ctx context.Context, slug string) (*models.Link, error) {
	if h.rdb != nil {
		if val, err := h.rdb.Get(ctx, linkCacheKey(slug)).Result(); err == nil {
			var link models.Link
			if err := json.Unmarshal([]byte(val), &link); err == nil {
				return &link, nil
			}
		}
	}

	link, err := h.links.FindBySlug(slug)
	if err != nil || link == nil {
		return link, err
	}

	if h.rdb != nil {
		if data, err := json.Marshal(link); err == nil {
			h.rdb.Set(ctx, linkCacheKey(slug), data, linkCacheTTL)
		}
	}
	return link, nil
}

// invalidateLink drops cache entries after a management mutation so stale
// status or targets cannot outlive the change by more than a cache miss.
func (h *Handler) invalidateLink(ctx context.Context, slugs ...string) {
	if h.rdb == nil {
		return
	}
	for _, slug := range slugs {
		h.rdb.Del(ctx, linkCacheKey(slug))
	}
}
