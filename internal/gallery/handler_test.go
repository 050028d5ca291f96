package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/police-1111/cmf/internal/media"
)

// fakeSearcher resolves each expression to a canned result or error.
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]media.Asset
	errs    map[string]error
	calls   []media.SearchRequest
}

func (f *fakeSearcher) Search(_ context.Context, req media.SearchRequest) ([]media.Asset, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if err, ok := f.errs[req.Expression]; ok {
		return nil, err
	}
	return f.results[req.Expression], nil
}

func assets(folder, resourceType string, n int) []media.Asset {
	out := make([]media.Asset, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s/track-%02d", folder, i)
		out = append(out, media.Asset{
			PublicID:     id,
			SecureURL:    fmt.Sprintf("https://res.example.com/%s.%s", id, resourceType),
			ResourceType: resourceType,
		})
	}
	return out
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

const (
	songsExpr      = "(folder:song AND (resource_type:raw OR resource_type:video))"
	vaultImageExpr = "folder:aif AND resource_type:image"
	vaultVideoExpr = "folder:aif AND resource_type:video"
	vaultSongExpr  = "folder:song AND resource_type:raw"
)

func TestSongs(t *testing.T) {
	fake := &fakeSearcher{
		results: map[string][]media.Asset{
			songsExpr: assets("song", "raw", 3),
		},
	}

	w := serve(NewHandler(fake), "/api/songs")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Songs []struct {
			URL  string `json:"url"`
			Name string `json:"name"`
		} `json:"songs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Songs, 3)
	assert.Equal(t, "track-00", body.Songs[0].Name, "name must be the last path segment")
	assert.Equal(t, "https://res.example.com/song/track-00.raw", body.Songs[0].URL)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, songsExpr, fake.calls[0].Expression)
	assert.Equal(t, 50, fake.calls[0].MaxResults)
	assert.Equal(t, "created_at", fake.calls[0].SortField)
	assert.Equal(t, "desc", fake.calls[0].SortOrder)
}

func TestSongsEmptyResult(t *testing.T) {
	fake := &fakeSearcher{results: map[string][]media.Asset{}}

	w := serve(NewHandler(fake), "/api/songs")
	require.Equal(t, http.StatusOK, w.Code)

	// An empty collection must render as [], not null.
	assert.JSONEq(t, `{"songs":[]}`, w.Body.String())
}

func TestSongsUpstreamFailure(t *testing.T) {
	fake := &fakeSearcher{
		errs: map[string]error{
			songsExpr: errors.New("host unreachable"),
		},
	}

	w := serve(NewHandler(fake), "/api/songs")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch songs", body["error"])
	assert.Contains(t, body["details"], "host unreachable")
}

func TestVault(t *testing.T) {
	fake := &fakeSearcher{
		results: map[string][]media.Asset{
			vaultImageExpr: assets("aif", "image", 10),
			vaultVideoExpr: assets("aif", "video", 5),
			vaultSongExpr:  assets("song", "raw", 20),
		},
	}

	w := serve(NewHandler(fake), "/api/vault")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Images []string `json:"images"`
		Videos []string `json:"videos"`
		Songs  []struct {
			URL  string `json:"url"`
			Name string `json:"name"`
		} `json:"songs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Len(t, body.Images, 10)
	assert.Len(t, body.Videos, 5)
	assert.Len(t, body.Songs, 20)
	assert.Equal(t, "track-00", body.Songs[0].Name)

	// All three queries issued, with the per-collection caps.
	require.Len(t, fake.calls, 3)
	caps := map[string]int{}
	for _, call := range fake.calls {
		caps[call.Expression] = call.MaxResults
	}
	assert.Equal(t, 50, caps[vaultImageExpr])
	assert.Equal(t, 30, caps[vaultVideoExpr])
	assert.Equal(t, 50, caps[vaultSongExpr])
}

func TestVaultAllOrNothing(t *testing.T) {
	fake := &fakeSearcher{
		results: map[string][]media.Asset{
			vaultImageExpr: assets("aif", "image", 10),
			vaultSongExpr:  assets("song", "raw", 20),
		},
		errs: map[string]error{
			vaultVideoExpr: errors.New("quota exceeded"),
		},
	}

	w := serve(NewHandler(fake), "/api/vault")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch from Cloudinary", body["error"])
	assert.Contains(t, body["details"], "quota exceeded")

	// No partial aggregate may leak alongside the error.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "images")
	assert.NotContains(t, raw, "songs")
}
