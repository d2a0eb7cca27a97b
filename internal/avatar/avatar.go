// Package avatar resolves avatar references into displayable image URLs.
package avatar

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/aptlinks/backend/config"
	"github.com/aptlinks/backend/internal/cache"
)

const ipfsScheme = "ipfs://"

// metadata bytes read limit; NFT metadata documents are tiny, anything
// larger is treated as an image.
const maxMetadataBytes = 1 << 20

// Resolver turns an avatar reference (direct URL, ipfs:// pointer, or empty)
// into a displayable URL. Resolution is best-effort: it never errors and
// never returns an empty string; the configured fallback path is the terminal
// case.
type Resolver struct {
	gateway  string
	fallback string
	maxDepth int
	http     *http.Client
	cache    cache.Cache
}

// NewResolver creates a resolver from the application configuration. The
// cache may be nil.
func NewResolver(cfg *config.Config, c cache.Cache) *Resolver {
	return &Resolver{
		gateway:  strings.TrimRight(cfg.IPFSGateway, "/"),
		fallback: cfg.AvatarFallback,
		maxDepth: cfg.AvatarMaxDepth,
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		cache:    c,
	}
}

// nftMetadata is the subset of token metadata shapes that carry a further
// image pointer.
type nftMetadata struct {
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
}

func (m nftMetadata) imageRef() string {
	if m.Image != "" {
		return m.Image
	}
	return m.ImageURL
}

// Resolve resolves ref to a displayable URL. An ipfs:// reference is
// rewritten to the gateway and fetched; if the content is JSON metadata with
// an embedded image pointer, resolution recurses into it, consuming one layer
// of indirection per step up to the configured depth. Self-referential
// metadata therefore terminates at the bound. Fetch failures and non-JSON
// content return the gateway URL itself, on the assumption it is already an
// image.
func (r *Resolver) Resolve(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.fallback
	}

	cacheKey := "avatar:" + ref
	if r.cache != nil {
		if url, err := r.cache.Get(ctx, cacheKey); err == nil {
			return url
		}
	}

	url := r.resolve(ctx, ref, r.maxDepth)
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, url)
	}
	return url
}

func (r *Resolver) resolve(ctx context.Context, ref string, depth int) string {
	url := r.rewrite(ref)
	if depth <= 0 {
		return url
	}

	meta, ok := r.fetchMetadata(ctx, url)
	if !ok {
		return url
	}
	next := meta.imageRef()
	if next == "" || next == ref {
		return url
	}
	return r.resolve(ctx, next, depth-1)
}

// rewrite converts an ipfs:// reference into a retrievable gateway URL;
// anything else passes through unchanged.
func (r *Resolver) rewrite(ref string) string {
	if strings.HasPrefix(ref, ipfsScheme) {
		return r.gateway + "/" + strings.TrimPrefix(ref, ipfsScheme)
	}
	return ref
}

// fetchMetadata fetches url and reports whether it was a JSON metadata
// document. Any failure means "treat the URL as an image".
func (r *Resolver) fetchMetadata(ctx context.Context, url string) (nftMetadata, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nftMetadata{}, false
	}

	resp, err := r.http.Do(req)
	if err != nil {
		log.Printf("avatar fetch %s: %v", url, err)
		return nftMetadata{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nftMetadata{}, false
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "json") {
		return nftMetadata{}, false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBytes))
	if err != nil {
		return nftMetadata{}, false
	}

	var meta nftMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nftMetadata{}, false
	}
	return meta, true
}
