// Package ans resolves human-readable Aptos names against the ANS HTTP API.
package ans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aptlinks/backend/config"
	"github.com/aptlinks/backend/internal/cache"
	"github.com/aptlinks/backend/internal/chain"
)

// Suffix is the canonical ANS name suffix.
const Suffix = ".apt"

// ErrNameNotFound is returned when a name has no registered target address.
var ErrNameNotFound = errors.New("name not registered")

// NormalizeName returns the canonical suffixed lookup form of a name:
// lowercase with exactly one ".apt" suffix. Idempotent, so both "greg" and
// "greg.apt" normalize to "greg.apt".
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, Suffix)
	return name + Suffix
}

// StripSuffix returns the unsuffixed display form of a name.
func StripSuffix(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), Suffix)
}

// Resolver maps names to addresses and back through the ANS HTTP API, with an
// optional read-through cache in front of forward lookups.
type Resolver struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
}

// NewResolver creates a resolver from the application configuration. The
// cache may be nil.
func NewResolver(cfg *config.Config, c cache.Cache) *Resolver {
	return &Resolver{
		baseURL: strings.TrimRight(cfg.ANSURL, "/"),
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		cache:   c,
	}
}

type addressResponse struct {
	Address string `json:"address"`
}

type nameResponse struct {
	Name string `json:"name"`
}

// ResolveAddress resolves a name to its long-form target address. The input
// is normalized to the canonical suffixed form first. An unregistered name
// returns ErrNameNotFound; transport failures are returned as-is and must not
// be conflated with absence by callers.
func (r *Resolver) ResolveAddress(ctx context.Context, name string) (string, error) {
	name = NormalizeName(name)

	cacheKey := "ans:addr:" + name
	if r.cache != nil {
		if addr, err := r.cache.Get(ctx, cacheKey); err == nil {
			return addr, nil
		}
	}

	var resp addressResponse
	found, err := r.get(ctx, "/v1/address/"+name, &resp)
	if err != nil {
		return "", err
	}
	if !found || resp.Address == "" {
		return "", ErrNameNotFound
	}

	address := chain.NormalizeAddress(resp.Address)
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, address)
	}
	return address, nil
}

// PrimaryName looks up the primary name registered for an address. Returns
// ErrNameNotFound when the address has none.
func (r *Resolver) PrimaryName(ctx context.Context, address string) (string, error) {
	var resp nameResponse
	found, err := r.get(ctx, "/v1/primary-name/"+address, &resp)
	if err != nil {
		return "", err
	}
	if !found || resp.Name == "" {
		return "", ErrNameNotFound
	}
	return NormalizeName(resp.Name), nil
}

// get returns found=false on a 404 or an empty body, distinguishing absence
// from transport failure.
func (r *Resolver) get(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return false, err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("ans lookup failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("ans lookup: unexpected status %d", resp.StatusCode)
	}
	if len(data) == 0 || string(data) == "{}" || string(data) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("ans lookup: malformed response: %w", err)
	}
	return true, nil
}
