// Package gallery serves the two read-only aggregation endpoints that
// front the media host: a merged song list and the full vault.
package gallery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/police-1111/cmf/internal/logger"
	"github.com/police-1111/cmf/internal/media"
)

type Handler struct {
	media media.Searcher
}

func NewHandler(m media.Searcher) *Handler {
	return &Handler{media: m}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/songs", h.Songs)
	r.GET("/api/vault", h.Vault)
}

type songEntry struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Songs returns every song asset, newest first, capped at 50.
func (h *Handler) Songs(c *gin.Context) {
	assets, err := h.media.Search(c.Request.Context(), media.SearchRequest{
		Expression: "(folder:song AND (resource_type:raw OR resource_type:video))",
		SortField:  "created_at",
		SortOrder:  "desc",
		MaxResults: 50,
	})
	if err != nil {
		logger.Error("song fetch failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch songs",
			"details": err.Error(),
		})
		return
	}

	logger.Info("songs fetched", map[string]any{
		"count": len(assets),
	})

	c.JSON(http.StatusOK, gin.H{
		"songs": songEntries(assets),
	})
}

// Vault returns the image, video and song collections in one response.
// The three searches run concurrently; any single failure fails the
// whole request, never a partial aggregate.
func (h *Handler) Vault(c *gin.Context) {
	var images, videos, songs []media.Asset

	g, ctx := errgroup.WithContext(c.Request.Context())

	g.Go(func() error {
		var err error
		images, err = h.media.Search(ctx, media.SearchRequest{
			Expression: "folder:aif AND resource_type:image",
			SortField:  "created_at",
			SortOrder:  "desc",
			MaxResults: 50,
		})
		return err
	})

	g.Go(func() error {
		var err error
		videos, err = h.media.Search(ctx, media.SearchRequest{
			Expression: "folder:aif AND resource_type:video",
			SortField:  "created_at",
			SortOrder:  "desc",
			MaxResults: 30,
		})
		return err
	})

	g.Go(func() error {
		var err error
		songs, err = h.media.Search(ctx, media.SearchRequest{
			Expression: "folder:song AND resource_type:raw",
			SortField:  "created_at",
			SortOrder:  "desc",
			MaxResults: 50,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("vault fetch failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch from Cloudinary",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": assetURLs(images),
		"videos": assetURLs(videos),
		"songs":  songEntries(songs),
	})
}

func assetURLs(assets []media.Asset) []string {
	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.SecureURL)
	}
	return urls
}

func songEntries(assets []media.Asset) []songEntry {
	entries := make([]songEntry, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, songEntry{
			URL:  a.SecureURL,
			Name: assetName(a.PublicID),
		})
	}
	return entries
}

// assetName is the last path segment of the host's internal identifier.
func assetName(publicID string) string {
	if i := strings.LastIndex(publicID, "/"); i >= 0 {
		return publicID[i+1:]
	}
	return publicID
}
